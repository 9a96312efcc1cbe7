package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(id string, status models.JobStatus) *models.Job {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.Job{
		ID:          id,
		Type:        models.JobPlotTimeseries,
		Start:       31557600,
		End:         2145765600,
		Status:      status,
		Attempt:     1,
		MaxAttempts: 3,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRedisJobRepository_CreateGet(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewRedisJobRepository(client)
	ctx := context.Background()
	job := newJob("j1", models.JobSubmitted)

	require.NoError(t, repo.Create(ctx, job))
	got, err := repo.Get(ctx, "j1")

	require.NoError(t, err)
	assert.Equal(t, job, got)

	// Идентификатор не используется повторно
	assert.ErrorIs(t, repo.Create(ctx, job), models.ErrJobExists)
}

func TestRedisJobRepository_GetNotFound(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewRedisJobRepository(client)

	_, err := repo.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrJobNotFound)
}

func TestRedisJobRepository_UpdateCompareAndSet(t *testing.T) {
	// Подготовка
	_, client := newTestRedis(t)
	repo := NewRedisJobRepository(client)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newJob("j1", models.JobSubmitted)))

	started := newJob("j1", models.JobInProgress)
	completed := newJob("j1", models.JobCompleted)
	completed.Result = &models.JobResult{Link: "https://i.imgur.com/x.png", DeleteHash: "dh", RecordCount: 3}
	failed := newJob("j1", models.JobFailed)

	// Действие и проверки
	require.NoError(t, repo.Update(ctx, started, models.JobSubmitted))
	require.NoError(t, repo.Update(ctx, completed, models.JobInProgress))

	// Второй конечный статус не записывается
	err := repo.Update(ctx, failed, models.JobInProgress)
	assert.ErrorIs(t, err, models.ErrStatusConflict)

	got, err := repo.Get(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobCompleted, got.Status)
	assert.Equal(t, completed.Result, got.Result)
}

func TestRedisJobRepository_UpdateMissing(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewRedisJobRepository(client)

	err := repo.Update(context.Background(), newJob("gone", models.JobInProgress), models.JobSubmitted)

	assert.ErrorIs(t, err, models.ErrJobNotFound)
}

func TestRedisJobRepository_ListAndDeleteAll(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewRedisJobRepository(client)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, newJob(id, models.JobSubmitted)))
	}

	jobs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	jobs, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
