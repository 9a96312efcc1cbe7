package models

import "math"

// Поля хеша инцидента в хранилище. Совпадают с именами колонок исходного набора данных.
const (
	FieldReportID  = "traffic_report_id"
	FieldIssue     = "issue_reported"
	FieldStatus    = "traffic_report_status"
	FieldPublished = "published_date"
	FieldUpdated   = "traffic_report_status_date_time"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldAddress   = "address"
	FieldAgency    = "agency"
)

// Incident - одна запись о дорожном происшествии
type Incident struct {
	ReportID    string            `json:"traffic_report_id"`
	IssueType   string            `json:"issue_reported"`
	Status      string            `json:"traffic_report_status"`
	PublishedAt int64             `json:"published_date"`
	UpdatedAt   int64             `json:"traffic_report_status_date_time"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	Address     string            `json:"address,omitempty"`
	Agency      string            `json:"agency,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// HasLocation сообщает, известны ли валидные координаты инцидента
func (i *Incident) HasLocation() bool {
	if i.Latitude == nil || i.Longitude == nil {
		return false
	}
	lat, lon := *i.Latitude, *i.Longitude
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Point - географическая точка в градусах
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Range - минимальное и максимальное значение
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CoordinatesRange - границы координат по всем инцидентам
type CoordinatesRange struct {
	Lat Range `json:"lat"`
	Lon Range `json:"lon"`
}
