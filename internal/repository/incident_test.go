package repository

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentRepository_SaveAndGet(t *testing.T) {
	// Подготовка
	mr, client := newTestRedis(t)
	repo := NewIncidentRepository(client)
	ctx := context.Background()
	incident := &models.Incident{
		ReportID:    "A1",
		IssueType:   "Crash Urgent",
		Status:      "ACTIVE",
		PublishedAt: 1673538900,
		UpdatedAt:   1673540000,
		Latitude:    coord(30.2672),
		Longitude:   coord(-97.7431),
		Address:     "W 6th St & Congress Ave",
		Agency:      "AUSTIN PD",
		Extra:       map[string]string{"location": "POINT (-97.7431 30.2672)"},
	}

	// Действие
	require.NoError(t, repo.Save(ctx, []*models.Incident{incident}))
	got, err := repo.Get(ctx, "A1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, incident, got)
	assert.Equal(t, "Crash Urgent", mr.HGet("incident:A1", models.FieldIssue))
}

func TestIncidentRepository_SaveReplacesWholeHash(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewIncidentRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []*models.Incident{{
		ReportID: "A1", Latitude: coord(30.1), Longitude: coord(-97.1),
		Extra: map[string]string{"stale": "yes"},
	}}))
	require.NoError(t, repo.Save(ctx, []*models.Incident{{ReportID: "A1", IssueType: "Stall"}}))

	got, err := repo.Get(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Stall", got.IssueType)
	assert.Nil(t, got.Latitude)
	assert.False(t, got.HasLocation())
	assert.Empty(t, got.Extra)
}

func TestIncidentRepository_GetNotFound(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewIncidentRepository(client)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrIncidentNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestIncidentRepository_ListAndGetMany(t *testing.T) {
	// Подготовка
	_, client := newTestRedis(t)
	repo := NewIncidentRepository(client)
	ctx := context.Background()
	incidents := make([]*models.Incident, 0, 1500)
	for i := range 1500 {
		incidents = append(incidents, &models.Incident{ReportID: fmt.Sprintf("R%04d", i), IssueType: "Crash"})
	}
	require.NoError(t, repo.Save(ctx, incidents))

	// Действие
	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	sort.Strings(ids)
	batch, err := repo.GetMany(ctx, []string{"R0001", "gone", "R1499"})

	// Проверки
	require.NoError(t, err)
	assert.Len(t, ids, 1500)
	assert.Equal(t, "R0000", ids[0])
	require.Len(t, batch, 2)
	assert.Equal(t, "R0001", batch[0].ReportID)
	assert.Equal(t, "R1499", batch[1].ReportID)
}

func TestIncidentRepository_DeleteAll(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewIncidentRepository(client)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, []*models.Incident{{ReportID: "1"}, {ReportID: "2"}}))
	require.NoError(t, mr.Set("job:other", "{}"))

	n, err := repo.DeleteAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("job:other"))
	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIncidentRepository_StoreError(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewIncidentRepository(client)
	mr.Close()

	_, err := repo.ListIDs(context.Background())

	assert.ErrorIs(t, err, models.ErrStore)
}
