package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/shenikar/atx_traffic/internal/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData возвращается, если рисовать нечего
var ErrNoData = errors.New("chart: no data to render")

var (
	barColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	dotColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	heatPalette = palette.Heat(64, 1)
)

// Renderer рисует PNG изображения заданного размера в пикселях
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{
		Width:  800,
		Height: 480,
	}
}

// Timeseries рисует столбчатую диаграмму количества происшествий по годам
func (r *Renderer) Timeseries(counts []models.YearCount) ([]byte, error) {
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = strconv.Itoa(c.Year)
	}

	p := plot.New()
	p.Title.Text = "Traffic incidents per year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Incidents"

	width := vg.Points(math.Max(float64(r.Width)/2/float64(len(counts)), 1))
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, fmt.Errorf("chart: failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)
	p.Y.Min = 0
	return r.encode(p)
}

// Dotmap рисует точки в пределах области
func (r *Renderer) Dotmap(points []models.Point, bounds models.Bounds) ([]byte, error) {
	if bounds.MaxLon <= bounds.MinLon || bounds.MaxLat <= bounds.MinLat {
		return nil, fmt.Errorf("chart: invalid bounds %+v", bounds)
	}
	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if bounds.Contains(pt) {
			xys = append(xys, plotter.XY{X: pt.Longitude, Y: pt.Latitude})
		}
	}

	p := plot.New()
	p.Title.Text = "Traffic incident locations"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	if len(xys) > 0 {
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("chart: failed to build scatter plot: %w", err)
		}
		scatter.GlyphStyle = draw.GlyphStyle{
			Color:  dotColor,
			Radius: vg.Points(3),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(scatter)
	}

	p.X.Min, p.X.Max = bounds.MinLon, bounds.MaxLon
	p.Y.Min, p.Y.Max = bounds.MinLat, bounds.MaxLat
	return r.encode(p)
}

// Heatmap рисует сетку плотности. Пустые ячейки не закрашиваются.
func (r *Renderer) Heatmap(grid models.Grid) ([]byte, error) {
	if len(grid.Counts) == 0 || len(grid.Counts[0]) == 0 {
		return nil, ErrNoData
	}
	peak := 0
	for _, row := range grid.Counts {
		for _, v := range row {
			peak = max(peak, v)
		}
	}

	p := plot.New()
	p.Title.Text = "Traffic incident density"
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	heat := plotter.NewHeatMap(newGridXYZ(grid), heatPalette)
	heat.Min = 0.5
	heat.Max = math.Max(float64(peak), 1)
	p.Add(heat)
	return r.encode(p)
}

// gridXYZ представляет models.Grid как plotter.GridXYZ, строка 0 внизу
type gridXYZ struct {
	counts [][]int
	minLon float64
	minLat float64
	cell   float64
}

func newGridXYZ(grid models.Grid) gridXYZ {
	g := gridXYZ{
		counts: grid.Counts,
		minLon: grid.Bounds.MinLon,
		minLat: grid.Bounds.MinLat,
		cell:   grid.Cell,
	}
	// без размера ячейки оси считаются в номерах ячеек
	if g.cell <= 0 {
		g.minLon, g.minLat, g.cell = 0, 0, 1
	}
	return g
}

func (g gridXYZ) Dims() (c, r int) {
	return len(g.counts[0]), len(g.counts)
}

func (g gridXYZ) Z(c, r int) float64 {
	return float64(g.counts[r][c])
}

func (g gridXYZ) X(c int) float64 {
	return g.minLon + (float64(c)+0.5)*g.cell
}

func (g gridXYZ) Y(r int) float64 {
	return g.minLat + (float64(r)+0.5)*g.cell
}

func (r *Renderer) encode(p *plot.Plot) ([]byte, error) {
	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Points(float64(r.Width)), vg.Points(float64(r.Height))),
		vgimg.UseDPI(72),
	)
	p.Draw(draw.New(canvas))

	buf := &bytes.Buffer{}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(buf); err != nil {
		return nil, fmt.Errorf("chart: failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
