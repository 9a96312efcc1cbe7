package models

import "math"

// Значения по умолчанию для параметров запроса
const (
	FilterAll        = "all"
	DefaultStartDate = "1971-01-01"
	DefaultEndDate   = "2037-12-30"
	DefaultLatitude  = 30.3079823
	DefaultLongitude = -97.8961686
	DefaultLimit     = 1<<32 - 1
)

// IncidentQuery - нормализованные параметры фильтрации инцидентов
type IncidentQuery struct {
	IncidentType string
	Status       string
	Start        int64
	End          int64
	Center       Point
	RadiusMiles  float64
	Offset       int
	Limit        int
}

// DefaultIncidentQuery возвращает запрос без ограничений по всем параметрам.
// Границы дат заданы в секундах, вызывающий код их переопределяет.
func DefaultIncidentQuery() IncidentQuery {
	return IncidentQuery{
		IncidentType: FilterAll,
		Status:       FilterAll,
		Start:        math.MinInt64,
		End:          math.MaxInt64,
		Center:       Point{Latitude: DefaultLatitude, Longitude: DefaultLongitude},
		RadiusMiles:  math.Inf(1),
		Offset:       0,
		Limit:        DefaultLimit,
	}
}

// Bounded сообщает, ограничен ли запрос радиусом
func (q IncidentQuery) Bounded() bool {
	return !math.IsInf(q.RadiusMiles, 1)
}

// JobQuery - параметры фильтрации задач
type JobQuery struct {
	JobType string
	Status  string
	Offset  int
	Limit   int
}
