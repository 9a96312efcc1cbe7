package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
)

// QueryParams - сырые строковые параметры запроса, пустая строка означает значение по умолчанию
type QueryParams struct {
	Type      string
	Status    string
	Start     string
	End       string
	Longitude string
	Latitude  string
	Radius    string
	Address   string
	Offset    string
	Limit     string
}

// ParseRange разбирает границы периода, пустые границы заменяются значениями по умолчанию
func ParseRange(start, end string, loc *time.Location) (int64, int64, error) {
	if start == "" {
		start = models.DefaultStartDate
	}
	if end == "" {
		end = models.DefaultEndDate
	}
	startSec, err := ParseDate(start, loc)
	if err != nil {
		return 0, 0, models.NewValidationError("start", "%s", err.Error())
	}
	endSec, err := ParseDate(end, loc)
	if err != nil {
		return 0, 0, models.NewValidationError("end", "%s", err.Error())
	}
	if startSec > endSec {
		return 0, 0, models.NewValidationError("start", "start date %q is after end date %q", start, end)
	}
	return startSec, endSec, nil
}

// parsePage разбирает offset и limit
func parsePage(offsetStr, limitStr string) (int, int, error) {
	offset, limit := 0, models.DefaultLimit
	if offsetStr != "" {
		v, err := strconv.Atoi(offsetStr)
		if err != nil || v < 0 {
			return 0, 0, models.NewValidationError("offset", "must be a non-negative integer, got %q", offsetStr)
		}
		offset = v
	}
	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			return 0, 0, models.NewValidationError("limit", "must be a non-negative integer, got %q", limitStr)
		}
		limit = v
	}
	return offset, limit, nil
}

func parseCoordinate(param, value string, fallback, bound float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) {
		return 0, models.NewValidationError(param, "coordinate must be a number, got %q", value)
	}
	if v < -bound || v > bound {
		return 0, models.NewValidationError(param, "coordinate must be within -%g and %g", bound, bound)
	}
	return v, nil
}

// BuildIncidentQuery проверяет все параметры до обращения к хранилищу.
// Адрес разрешается в координаты, только если задан геокодер.
func BuildIncidentQuery(ctx context.Context, p QueryParams, loc *time.Location, geocoder Geocoder) (models.IncidentQuery, error) {
	q := models.DefaultIncidentQuery()

	if p.Type != "" {
		q.IncidentType = p.Type
	}
	if p.Status != "" {
		q.Status = p.Status
	}

	if p.Radius != "" {
		radius, err := strconv.ParseFloat(p.Radius, 64)
		if err != nil || math.IsNaN(radius) {
			return q, models.NewValidationError("radius", "must be a number or 'inf', got %q", p.Radius)
		}
		if radius < 0 {
			return q, models.NewValidationError("radius", "must be a positive number")
		}
		q.RadiusMiles = radius
	}

	start, end, err := ParseRange(p.Start, p.End, loc)
	if err != nil {
		return q, err
	}
	q.Start, q.End = start, end

	lat, err := parseCoordinate("lat", p.Latitude, models.DefaultLatitude, 90)
	if err != nil {
		return q, err
	}
	lon, err := parseCoordinate("lgt", p.Longitude, models.DefaultLongitude, 180)
	if err != nil {
		return q, err
	}
	q.Center = models.Point{Latitude: lat, Longitude: lon}

	q.Offset, q.Limit, err = parsePage(p.Offset, p.Limit)
	if err != nil {
		return q, err
	}

	if address := strings.TrimSpace(p.Address); address != "" {
		if geocoder == nil {
			return q, models.NewValidationError("address", "address lookup is not enabled")
		}
		point, err := geocoder.Geocode(ctx, address)
		if err != nil {
			return q, err
		}
		q.Center = point
	}
	return q, nil
}

// BuildJobQuery проверяет параметры фильтрации задач
func BuildJobQuery(jobType, status, offset, limit string) (models.JobQuery, error) {
	q := models.JobQuery{JobType: models.FilterAll, Status: models.FilterAll}
	if jobType != "" {
		q.JobType = jobType
	}
	if status != "" {
		q.Status = status
	}
	var err error
	q.Offset, q.Limit, err = parsePage(offset, limit)
	return q, err
}
