package models

// Bounds - прямоугольная область в градусах
type Bounds struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

// Contains сообщает, лежит ли точка внутри области, включая границы
func (b Bounds) Contains(p Point) bool {
	return p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon &&
		p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat
}

// PlotBounds - область карты Остина для точечной и тепловой карт
var PlotBounds = Bounds{MinLon: -98.9, MaxLon: -97.0, MinLat: 30.0, MaxLat: 31.1}

// HeatmapCell - размер ячейки тепловой карты в градусах
const HeatmapCell = 0.01

// YearCount - количество происшествий за год
type YearCount struct {
	Year  int
	Count int
}

// Grid - двумерная гистограмма плотности. Counts[row][col], строка 0 соответствует MinLat.
type Grid struct {
	Bounds Bounds
	Cell   float64
	Counts [][]int
}
