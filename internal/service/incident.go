package service

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/sirupsen/logrus"
)

// scanBatchSize - сколько хешей читается из хранилища за один запрос
const scanBatchSize = 500

// IncidentRepository определяет контракт хранилища записей о происшествиях
type IncidentRepository interface {
	Save(ctx context.Context, incidents []*models.Incident) error
	Get(ctx context.Context, id string) (*models.Incident, error)
	ListIDs(ctx context.Context) ([]string, error)
	GetMany(ctx context.Context, ids []string) ([]*models.Incident, error)
	DeleteAll(ctx context.Context) (int, error)
}

// Geocoder разрешает адрес в координаты
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Point, error)
}

// IncidentService определяет контракт бизнес-логики чтения и записи происшествий
type IncidentService interface {
	Query(ctx context.Context, q models.IncidentQuery) ([]*models.Incident, error)
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	ListIssues(ctx context.Context) ([]string, error)
	PublishedRange(ctx context.Context) (models.Range, error)
	UpdatedRange(ctx context.Context) (models.Range, error)
	CoordinatesRange(ctx context.Context) (models.CoordinatesRange, error)
	SaveIncidents(ctx context.Context, incidents []*models.Incident) error
	DeleteAll(ctx context.Context) (int, error)
}

type incidentService struct {
	repo   IncidentRepository
	logger *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:   repo,
		logger: logger,
	}
}

// scan обходит все записи в порядке ключей, пока visit возвращает true
func (s *incidentService) scan(ctx context.Context, visit func(*models.Incident) bool) error {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return err
	}
	sort.Strings(ids)

	for start := 0; start < len(ids); start += scanBatchSize {
		end := min(start+scanBatchSize, len(ids))
		batch, err := s.repo.GetMany(ctx, ids[start:end])
		if err != nil {
			return err
		}
		for _, inc := range batch {
			if !visit(inc) {
				return nil
			}
		}
	}
	return nil
}

// Query возвращает записи, удовлетворяющие всем предикатам запроса
func (s *incidentService) Query(ctx context.Context, q models.IncidentQuery) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Query",
		"type":    q.IncidentType,
		"status":  q.Status,
		"offset":  q.Offset,
		"limit":   q.Limit,
	})
	log.Debug("Filtering incidents")

	result := make([]*models.Incident, 0)
	p := newPager(q.Offset, q.Limit)
	if p.full() {
		return result, nil
	}

	err := s.scan(ctx, func(inc *models.Incident) bool {
		if !MatchIncident(q, inc) {
			return true
		}
		if p.accept() {
			result = append(result, inc)
		}
		return !p.full()
	})
	if err != nil {
		log.WithError(err).Error("Failed to scan incidents")
		return nil, fmt.Errorf("service: could not query incidents: %w", err)
	}

	log.WithField("count", len(result)).Debug("Incidents filtered successfully")
	return result, nil
}

// GetIncident получает запись по идентификатору отчета
func (s *incidentService) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	incident, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":     "incident",
			"method":      "GetIncident",
			"incident_id": id,
		}).WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIssues возвращает уникальные типы происшествий в порядке первого появления
func (s *incidentService) ListIssues(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	issues := make([]string, 0)
	err := s.scan(ctx, func(inc *models.Incident) bool {
		if _, ok := seen[inc.IssueType]; !ok {
			seen[inc.IssueType] = struct{}{}
			issues = append(issues, inc.IssueType)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("service: could not list issues: %w", err)
	}
	return issues, nil
}

func (s *incidentService) timeRange(ctx context.Context, value func(*models.Incident) int64) (models.Range, error) {
	r := models.Range{Min: math.Inf(1), Max: math.Inf(-1)}
	found := false
	err := s.scan(ctx, func(inc *models.Incident) bool {
		v := float64(value(inc))
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
		found = true
		return true
	})
	if err != nil {
		return models.Range{}, err
	}
	if !found {
		return models.Range{}, fmt.Errorf("no incidents stored: %w", models.ErrIncidentNotFound)
	}
	return r, nil
}

// PublishedRange возвращает минимальную и максимальную дату публикации
func (s *incidentService) PublishedRange(ctx context.Context) (models.Range, error) {
	r, err := s.timeRange(ctx, func(inc *models.Incident) int64 { return inc.PublishedAt })
	if err != nil {
		return r, fmt.Errorf("service: could not get published range: %w", err)
	}
	return r, nil
}

// UpdatedRange возвращает минимальную и максимальную дату обновления
func (s *incidentService) UpdatedRange(ctx context.Context) (models.Range, error) {
	r, err := s.timeRange(ctx, func(inc *models.Incident) int64 { return inc.UpdatedAt })
	if err != nil {
		return r, fmt.Errorf("service: could not get updated range: %w", err)
	}
	return r, nil
}

// CoordinatesRange возвращает границы координат по записям с известным местоположением
func (s *incidentService) CoordinatesRange(ctx context.Context) (models.CoordinatesRange, error) {
	r := models.CoordinatesRange{
		Lat: models.Range{Min: math.Inf(1), Max: math.Inf(-1)},
		Lon: models.Range{Min: math.Inf(1), Max: math.Inf(-1)},
	}
	found := false
	err := s.scan(ctx, func(inc *models.Incident) bool {
		if !inc.HasLocation() {
			return true
		}
		r.Lat.Min = math.Min(r.Lat.Min, *inc.Latitude)
		r.Lat.Max = math.Max(r.Lat.Max, *inc.Latitude)
		r.Lon.Min = math.Min(r.Lon.Min, *inc.Longitude)
		r.Lon.Max = math.Max(r.Lon.Max, *inc.Longitude)
		found = true
		return true
	})
	if err != nil {
		return models.CoordinatesRange{}, fmt.Errorf("service: could not get coordinates range: %w", err)
	}
	if !found {
		return models.CoordinatesRange{}, fmt.Errorf("service: no incidents with coordinates: %w", models.ErrIncidentNotFound)
	}
	return r, nil
}

// SaveIncidents записывает пачку записей целиком, существующие ключи перезаписываются
func (s *incidentService) SaveIncidents(ctx context.Context, incidents []*models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "SaveIncidents",
		"count":   len(incidents),
	})
	if err := s.repo.Save(ctx, incidents); err != nil {
		log.WithError(err).Error("Failed to save incidents in repository")
		return fmt.Errorf("service: could not save incidents: %w", err)
	}
	log.Info("Incidents saved successfully")
	return nil
}

// DeleteAll удаляет все записи о происшествиях
func (s *incidentService) DeleteAll(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "DeleteAll",
	})
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to delete incidents in repository")
		return 0, fmt.Errorf("service: could not delete incidents: %w", err)
	}
	log.WithField("count", n).Info("Incidents deleted successfully")
	return n, nil
}
