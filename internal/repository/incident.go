package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

const (
	incidentKeyPrefix = "incident:"
	saveBatchSize     = 1000
	scanCount         = 1000
)

// IncidentRepository хранит каждое происшествие отдельным хешем incident:<report id>
type IncidentRepository struct {
	redisClient *redis.Client
}

func NewIncidentRepository(redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		redisClient: redisClient,
	}
}

func incidentKey(id string) string {
	return incidentKeyPrefix + id
}

// storeError помечает ошибку бэкенда как models.ErrStore
func storeError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, models.ErrStore, err)
}

// Save перезаписывает хеши пачками. Внутри пачки DEL+HSET выполняются в MULTI, поэтому запись не обновляется частично.
func (r *IncidentRepository) Save(ctx context.Context, incidents []*models.Incident) error {
	for start := 0; start < len(incidents); start += saveBatchSize {
		end := min(start+saveBatchSize, len(incidents))
		pipe := r.redisClient.TxPipeline()
		for _, inc := range incidents[start:end] {
			key := incidentKey(inc.ReportID)
			pipe.Del(ctx, key)
			pipe.HSet(ctx, key, incidentToHash(inc))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return storeError("save incidents", err)
		}
	}
	return nil
}

// Get возвращает происшествие по идентификатору отчета
func (r *IncidentRepository) Get(ctx context.Context, id string) (*models.Incident, error) {
	fields, err := r.redisClient.HGetAll(ctx, incidentKey(id)).Result()
	if err != nil {
		return nil, storeError("get incident", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrIncidentNotFound)
	}
	return incidentFromHash(fields), nil
}

// ListIDs перечисляет идентификаторы всех записей через SCAN
func (r *IncidentRepository) ListIDs(ctx context.Context) ([]string, error) {
	keys, err := scanKeys(ctx, r.redisClient, incidentKeyPrefix+"*")
	if err != nil {
		return nil, storeError("list incident keys", err)
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, incidentKeyPrefix))
	}
	return ids, nil
}

// GetMany читает записи одним конвейером. Ключи, удаленные между SCAN и чтением, пропускаются.
func (r *IncidentRepository) GetMany(ctx context.Context, ids []string) ([]*models.Incident, error) {
	if len(ids) == 0 {
		return []*models.Incident{}, nil
	}
	pipe := r.redisClient.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, incidentKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, storeError("get incidents", err)
	}

	incidents := make([]*models.Incident, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		incidents = append(incidents, incidentFromHash(fields))
	}
	return incidents, nil
}

// DeleteAll удаляет все хеши происшествий и возвращает их количество
func (r *IncidentRepository) DeleteAll(ctx context.Context) (int, error) {
	n, err := deleteByPattern(ctx, r.redisClient, incidentKeyPrefix+"*")
	if err != nil {
		return n, storeError("delete incidents", err)
	}
	return n, nil
}

func scanKeys(ctx context.Context, client *redis.Client, pattern string) ([]string, error) {
	keys := make([]string, 0)
	iter := client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func deleteByPattern(ctx context.Context, client *redis.Client, pattern string) (int, error) {
	keys, err := scanKeys(ctx, client, pattern)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for start := 0; start < len(keys); start += saveBatchSize {
		end := min(start+saveBatchSize, len(keys))
		n, err := client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += int(n)
	}
	return deleted, nil
}

func incidentToHash(inc *models.Incident) map[string]any {
	fields := make(map[string]any, len(inc.Extra)+9)
	for k, v := range inc.Extra {
		fields[k] = v
	}
	fields[models.FieldReportID] = inc.ReportID
	fields[models.FieldIssue] = inc.IssueType
	fields[models.FieldStatus] = inc.Status
	fields[models.FieldPublished] = strconv.FormatInt(inc.PublishedAt, 10)
	fields[models.FieldUpdated] = strconv.FormatInt(inc.UpdatedAt, 10)
	fields[models.FieldLatitude] = formatCoordinate(inc.Latitude)
	fields[models.FieldLongitude] = formatCoordinate(inc.Longitude)
	fields[models.FieldAddress] = inc.Address
	fields[models.FieldAgency] = inc.Agency
	return fields
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseEpoch(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(v)
	}
	return 0
}

func incidentFromHash(fields map[string]string) *models.Incident {
	inc := &models.Incident{
		ReportID:    fields[models.FieldReportID],
		IssueType:   fields[models.FieldIssue],
		Status:      fields[models.FieldStatus],
		PublishedAt: parseEpoch(fields[models.FieldPublished]),
		UpdatedAt:   parseEpoch(fields[models.FieldUpdated]),
		Latitude:    parseCoordinate(fields[models.FieldLatitude]),
		Longitude:   parseCoordinate(fields[models.FieldLongitude]),
		Address:     fields[models.FieldAddress],
		Agency:      fields[models.FieldAgency],
	}
	for k, v := range fields {
		switch k {
		case models.FieldReportID, models.FieldIssue, models.FieldStatus, models.FieldPublished,
			models.FieldUpdated, models.FieldLatitude, models.FieldLongitude, models.FieldAddress, models.FieldAgency:
			continue
		}
		if inc.Extra == nil {
			inc.Extra = make(map[string]string)
		}
		inc.Extra[k] = v
	}
	return inc
}
