package worker

import (
	"math"
	"sort"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
)

// YearlyCounts считает происшествия по году публикации в заданном часовом поясе
func YearlyCounts(incidents []*models.Incident, loc *time.Location) []models.YearCount {
	byYear := make(map[int]int)
	for _, inc := range incidents {
		byYear[time.Unix(inc.PublishedAt, 0).In(loc).Year()]++
	}
	counts := make([]models.YearCount, 0, len(byYear))
	for year, n := range byYear {
		counts = append(counts, models.YearCount{Year: year, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// PointsWithin возвращает координаты записей, попавших в область
func PointsWithin(incidents []*models.Incident, bounds models.Bounds) []models.Point {
	points := make([]models.Point, 0, len(incidents))
	for _, inc := range incidents {
		if !inc.HasLocation() {
			continue
		}
		p := models.Point{Latitude: *inc.Latitude, Longitude: *inc.Longitude}
		if bounds.Contains(p) {
			points = append(points, p)
		}
	}
	return points
}

// BinGrid раскладывает точки по ячейкам размера cell
func BinGrid(points []models.Point, bounds models.Bounds, cell float64) models.Grid {
	cols := int(math.Ceil((bounds.MaxLon-bounds.MinLon)/cell - 1e-9))
	rows := int(math.Ceil((bounds.MaxLat-bounds.MinLat)/cell - 1e-9))
	counts := make([][]int, rows)
	for i := range counts {
		counts[i] = make([]int, cols)
	}
	for _, p := range points {
		if !bounds.Contains(p) {
			continue
		}
		// Точки на верхней и правой границе попадают в крайнюю ячейку
		col := min(int((p.Longitude-bounds.MinLon)/cell), cols-1)
		row := min(int((p.Latitude-bounds.MinLat)/cell), rows-1)
		counts[row][col]++
	}
	return models.Grid{Bounds: bounds, Cell: cell, Counts: counts}
}
