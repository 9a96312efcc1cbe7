package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
)

// Document - колоночный JSON-документ набора данных (формат rows.json)
type Document struct {
	Meta struct {
		View struct {
			Columns []Column `json:"columns"`
		} `json:"view"`
	} `json:"meta"`
	Data [][]any `json:"data"`
}

// Column - описание колонки набора данных
type Column struct {
	FieldName string   `json:"fieldName"`
	Flags     []string `json:"flags"`
}

// Center - ожидаемый центр агломерации для проверки правдоподобия координат
var Center = models.Point{Latitude: 30.2672, Longitude: -97.7431}

// Schema - индексы именованных колонок, вычисленные один раз для документа
type Schema struct {
	names  []string
	hidden []bool
	index  map[string]int
}

// NewSchema строит схему и проверяет наличие колонки с идентификатором отчета
func NewSchema(columns []Column) (*Schema, error) {
	s := &Schema{
		names:  make([]string, len(columns)),
		hidden: make([]bool, len(columns)),
		index:  make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		name := strings.ReplaceAll(col.FieldName, ":", "")
		s.names[i] = name
		s.hidden[i] = slices.Contains(col.Flags, "hidden")
		if _, ok := s.index[name]; !ok {
			s.index[name] = i
		}
	}
	if _, ok := s.index[models.FieldReportID]; !ok {
		return nil, fmt.Errorf("dataset has no %q column", models.FieldReportID)
	}
	return s, nil
}

func (s *Schema) value(row []any, field string) string {
	i, ok := s.index[field]
	if !ok || i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

// Parser переводит строки документа в записи о происшествиях
type Parser struct {
	// Tolerance - допустимое отклонение координат от Center в градусах
	Tolerance float64
	Location  *time.Location
}

// Parse разбирает документ. Скрытые колонки отбрасываются, строки без идентификатора пропускаются.
func (p Parser) Parse(doc *Document) ([]*models.Incident, error) {
	schema, err := NewSchema(doc.Meta.View.Columns)
	if err != nil {
		return nil, err
	}

	incidents := make([]*models.Incident, 0, len(doc.Data))
	for _, row := range doc.Data {
		inc := p.parseRow(schema, row)
		if inc.ReportID == "" {
			continue
		}
		incidents = append(incidents, inc)
	}
	return incidents, nil
}

func (p Parser) parseRow(s *Schema, row []any) *models.Incident {
	inc := &models.Incident{
		ReportID:    s.value(row, models.FieldReportID),
		IssueType:   s.value(row, models.FieldIssue),
		Status:      s.value(row, models.FieldStatus),
		PublishedAt: p.parseTime(s.value(row, models.FieldPublished)),
		UpdatedAt:   p.parseTime(s.value(row, models.FieldUpdated)),
		Address:     s.value(row, models.FieldAddress),
		Agency:      s.value(row, models.FieldAgency),
	}

	lat := parseFloat(s.value(row, models.FieldLatitude))
	lon := parseFloat(s.value(row, models.FieldLongitude))
	// Выброс по любой из координат обнуляет всю пару
	if lat != nil && lon != nil && p.plausible(*lat, *lon) {
		inc.Latitude, inc.Longitude = lat, lon
	}

	for i, name := range s.names {
		if s.hidden[i] || i >= len(row) || isNamedField(name) {
			continue
		}
		if inc.Extra == nil {
			inc.Extra = make(map[string]string)
		}
		inc.Extra[name] = cellString(row[i])
	}
	return inc
}

func (p Parser) plausible(lat, lon float64) bool {
	return math.Abs(lat-Center.Latitude) <= p.Tolerance && math.Abs(lon-Center.Longitude) <= p.Tolerance
}

// parseTime принимает секунды эпохи или метку времени ISO 8601 без зоны
func (p Parser) parseTime(s string) int64 {
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v)
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.Unix()
		}
	}
	return 0
}

func isNamedField(name string) bool {
	switch name {
	case models.FieldReportID, models.FieldIssue, models.FieldStatus, models.FieldPublished,
		models.FieldUpdated, models.FieldLatitude, models.FieldLongitude, models.FieldAddress, models.FieldAgency:
		return true
	}
	return false
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
