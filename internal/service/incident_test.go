package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestIncidentService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewIncidentService(repoMock, logger)
	return service.(*incidentService), repoMock
}

// expectStore настраивает мок хранилища на выдачу записей по идентификаторам
func expectStore(repoMock *mocks.MockIncidentRepository, incidents ...*models.Incident) {
	byID := make(map[string]*models.Incident, len(incidents))
	ids := make([]string, 0, len(incidents))
	for _, inc := range incidents {
		byID[inc.ReportID] = inc
		ids = append(ids, inc.ReportID)
	}
	repoMock.EXPECT().ListIDs(gomock.Any()).Return(ids, nil).Times(1)
	repoMock.EXPECT().
		GetMany(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch []string) ([]*models.Incident, error) {
			result := make([]*models.Incident, 0, len(batch))
			for _, id := range batch {
				result = append(result, byID[id])
			}
			return result, nil
		}).
		AnyTimes()
}

func TestQuery_SortedAndFiltered(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	expectStore(repoMock,
		&models.Incident{ReportID: "c", IssueType: "Crash", Status: "ACTIVE"},
		&models.Incident{ReportID: "a", IssueType: "Crash", Status: "ACTIVE"},
		&models.Incident{ReportID: "b", IssueType: "Stall", Status: "ACTIVE"},
	)
	q := models.DefaultIncidentQuery()
	q.IncidentType = "crash"

	// Действие
	result, err := service.Query(ctx, q)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "a", result[0].ReportID)
	assert.Equal(t, "c", result[1].ReportID)
}

func TestQuery_OffsetLimitAcrossBatches(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidents := make([]*models.Incident, 0, 1200)
	for i := range 1200 {
		incidents = append(incidents, &models.Incident{ReportID: fmt.Sprintf("%05d", i), IssueType: "Crash"})
	}
	expectStore(repoMock, incidents...)
	q := models.DefaultIncidentQuery()
	q.Offset = 495
	q.Limit = 10

	// Действие
	result, err := service.Query(ctx, q)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 10)
	assert.Equal(t, "00495", result[0].ReportID)
	assert.Equal(t, "00504", result[9].ReportID)
}

func TestQuery_StopsScanWhenLimitReached(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = fmt.Sprintf("%04d", i)
	}

	// Ожидания: после заполнения первой пачки второй запрос не выполняется
	repoMock.EXPECT().ListIDs(ctx).Return(ids, nil).Times(1)
	repoMock.EXPECT().
		GetMany(ctx, ids[:scanBatchSize]).
		Return([]*models.Incident{{ReportID: "0000"}, {ReportID: "0001"}}, nil).
		Times(1)

	q := models.DefaultIncidentQuery()
	q.Limit = 1

	// Действие
	result, err := service.Query(ctx, q)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "0000", result[0].ReportID)
}

func TestQuery_ZeroLimitSkipsStore(t *testing.T) {
	service, _ := newTestIncidentService(t)
	q := models.DefaultIncidentQuery()
	q.Limit = 0

	result, err := service.Query(context.Background(), q)

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestQuery_StoreError(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	storeErr := fmt.Errorf("failed to list incident keys: %w", models.ErrStore)

	// Ожидания
	repoMock.EXPECT().ListIDs(ctx).Return(nil, storeErr).Times(1)

	// Действие
	result, err := service.Query(ctx, models.DefaultIncidentQuery())

	// Проверки
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrStore)
}

func TestGetIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()

	// Ожидания
	repoMock.EXPECT().
		Get(ctx, "missing").
		Return(nil, fmt.Errorf("incident with id missing: %w", models.ErrIncidentNotFound)).
		Times(1)

	// Действие
	incident, err := service.GetIncident(ctx, "missing")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, incident)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListIssues_FirstSeenOrder(t *testing.T) {
	service, repoMock := newTestIncidentService(t)
	expectStore(repoMock,
		&models.Incident{ReportID: "1", IssueType: "Crash"},
		&models.Incident{ReportID: "2", IssueType: "Stall"},
		&models.Incident{ReportID: "3", IssueType: "Crash"},
		&models.Incident{ReportID: "4", IssueType: "Debris"},
	)

	issues, err := service.ListIssues(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Crash", "Stall", "Debris"}, issues)
}

func TestRanges(t *testing.T) {
	service, repoMock := newTestIncidentService(t)
	expectStore(repoMock,
		&models.Incident{ReportID: "1", PublishedAt: 300, UpdatedAt: 900, Latitude: coord(30.1), Longitude: coord(-97.9)},
		&models.Incident{ReportID: "2", PublishedAt: 100, UpdatedAt: 400},
		&models.Incident{ReportID: "3", PublishedAt: 200, UpdatedAt: 500, Latitude: coord(30.5), Longitude: coord(-97.5)},
	)
	// Каждый диапазон сканирует хранилище заново
	repoMock.EXPECT().ListIDs(gomock.Any()).Return([]string{"1", "2", "3"}, nil).Times(2)

	published, err := service.PublishedRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Range{Min: 100, Max: 300}, published)

	updated, err := service.UpdatedRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Range{Min: 400, Max: 900}, updated)

	coords, err := service.CoordinatesRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Range{Min: 30.1, Max: 30.5}, coords.Lat)
	assert.Equal(t, models.Range{Min: -97.9, Max: -97.5}, coords.Lon)
}

func TestRanges_EmptyStore(t *testing.T) {
	service, repoMock := newTestIncidentService(t)
	repoMock.EXPECT().ListIDs(gomock.Any()).Return([]string{}, nil).Times(2)

	_, err := service.PublishedRange(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = service.CoordinatesRange(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSaveIncidents_Error(t *testing.T) {
	// Подготовка
	service, repoMock := newTestIncidentService(t)
	ctx := context.Background()
	incidents := []*models.Incident{{ReportID: "1"}}

	// Ожидания
	repoMock.EXPECT().Save(ctx, incidents).Return(models.ErrStore).Times(1)

	// Действие
	err := service.SaveIncidents(ctx, incidents)

	// Проверки
	assert.ErrorIs(t, err, models.ErrStore)
}

func TestDeleteAll_Incidents(t *testing.T) {
	service, repoMock := newTestIncidentService(t)
	repoMock.EXPECT().DeleteAll(gomock.Any()).Return(42, nil).Times(1)

	n, err := service.DeleteAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}
