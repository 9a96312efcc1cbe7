package worker

import (
	"testing"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incidentAt(published int64, lat, lon float64) *models.Incident {
	return &models.Incident{ReportID: "r", PublishedAt: published, Latitude: &lat, Longitude: &lon}
}

func TestYearlyCounts(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	incidents := []*models.Incident{
		incidentAt(1673538900, 30.2, -97.7), // 2023
		incidentAt(1673538900, 30.2, -97.7),
		incidentAt(31557600, 30.2, -97.7), // 1971-01-01 00:00 по Чикаго
		incidentAt(31557599, 30.2, -97.7), // секундой раньше - 1970
	}

	counts := YearlyCounts(incidents, loc)

	assert.Equal(t, []models.YearCount{
		{Year: 1970, Count: 1},
		{Year: 1971, Count: 1},
		{Year: 2023, Count: 2},
	}, counts)
}

func TestPointsWithin(t *testing.T) {
	inside := incidentAt(0, 30.28, -97.73)
	outside := incidentAt(0, 45, -120)
	noLocation := &models.Incident{ReportID: "x"}

	points := PointsWithin([]*models.Incident{inside, outside, noLocation}, models.PlotBounds)

	assert.Equal(t, []models.Point{{Latitude: 30.28, Longitude: -97.73}}, points)
}

func TestBinGrid(t *testing.T) {
	bounds := models.PlotBounds
	points := []models.Point{
		{Latitude: bounds.MinLat, Longitude: bounds.MinLon},
		{Latitude: bounds.MinLat + 0.005, Longitude: bounds.MinLon + 0.005},
		{Latitude: bounds.MaxLat, Longitude: bounds.MaxLon},
		{Latitude: 50, Longitude: 50},
	}

	grid := BinGrid(points, bounds, models.HeatmapCell)

	require.Len(t, grid.Counts, 110)
	require.Len(t, grid.Counts[0], 190)
	assert.Equal(t, 2, grid.Counts[0][0])
	assert.Equal(t, 1, grid.Counts[109][189])

	total := 0
	for _, row := range grid.Counts {
		for _, v := range row {
			total += v
		}
	}
	assert.Equal(t, 3, total)
}
