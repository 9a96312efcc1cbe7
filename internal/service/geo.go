package service

import (
	"math"

	"github.com/shenikar/atx_traffic/internal/models"
)

// earthRadiusMiles - средний радиус Земли в милях
const earthRadiusMiles = 3958.7613

// DistanceMiles возвращает расстояние по большому кругу между двумя точками (формула гаверсинусов)
func DistanceMiles(a, b models.Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}
