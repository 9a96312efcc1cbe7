package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pgJobID   = "7f1c2a9e-4b1d-4c3e-9a55-0d6f2b8e1a01"
	pgRetryID = "0b9e6f3a-61c2-4d7e-8f10-3a2b4c5d6e7f"
)

var pgColumns = []string{
	"id", "job_type", "start_epoch", "end_epoch", "status", "attempt", "max_attempts",
	"parent_id", "retried_by", "error", "result", "created_at", "updated_at",
}

func newTestPostgres(t *testing.T) (pgxmock.PgxPoolIface, *PostgresJobRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &PostgresJobRepository{db: mock}
}

func pgJobRow(rows *pgxmock.Rows, id string, status models.JobStatus, createdAt time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, string(models.JobPlotTimeseries), int64(31557600), int64(2145765600), string(status),
		1, 3, "", "", "", []byte(nil), createdAt, createdAt,
	)
}

func TestPostgresJobRepository_Get(t *testing.T) {
	mock, repo := newTestPostgres(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs(pgJobID).
		WillReturnRows(pgJobRow(pgxmock.NewRows(pgColumns), pgJobID, models.JobCompleted, created))

	job, err := repo.Get(context.Background(), pgJobID)

	require.NoError(t, err)
	assert.Equal(t, pgJobID, job.ID)
	assert.Equal(t, models.JobPlotTimeseries, job.Type)
	assert.Equal(t, models.JobCompleted, job.Status)
	assert.Empty(t, job.ParentID)
	assert.Nil(t, job.Result)
	assert.Equal(t, created, job.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_GetNotFound(t *testing.T) {
	mock, repo := newTestPostgres(t)

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs(pgJobID).
		WillReturnRows(pgxmock.NewRows(pgColumns))

	_, err := repo.Get(context.Background(), pgJobID)

	assert.ErrorIs(t, err, models.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_MalformedID(t *testing.T) {
	mock, repo := newTestPostgres(t)
	ctx := context.Background()

	// Запросы к бд не выполняются
	_, err := repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrJobNotFound)
	assert.NotErrorIs(t, err, models.ErrStore)

	err = repo.Update(ctx, newJob("not-a-uuid", models.JobInProgress), models.JobSubmitted)
	assert.ErrorIs(t, err, models.ErrJobNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_GetStoreError(t *testing.T) {
	mock, repo := newTestPostgres(t)

	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs(pgJobID).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), pgJobID)

	assert.ErrorIs(t, err, models.ErrStore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_Update(t *testing.T) {
	mock, repo := newTestPostgres(t)
	job := newJob(pgJobID, models.JobInProgress)

	mock.ExpectExec("UPDATE jobs SET").
		WithArgs(pgJobID, string(models.JobInProgress), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), string(models.JobSubmitted)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.Update(context.Background(), job, models.JobSubmitted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_UpdateConflict(t *testing.T) {
	mock, repo := newTestPostgres(t)
	job := newJob(pgJobID, models.JobInProgress)

	// Строка есть, но статус уже другой
	mock.ExpectExec("UPDATE jobs SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs(pgJobID).
		WillReturnRows(pgJobRow(pgxmock.NewRows(pgColumns), pgJobID, models.JobFailed, time.Now().UTC()))

	err := repo.Update(context.Background(), job, models.JobSubmitted)

	assert.ErrorIs(t, err, models.ErrStatusConflict)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_UpdateMissing(t *testing.T) {
	mock, repo := newTestPostgres(t)
	job := newJob(pgJobID, models.JobInProgress)

	mock.ExpectExec("UPDATE jobs SET").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery("FROM jobs WHERE id").
		WithArgs(pgJobID).
		WillReturnRows(pgxmock.NewRows(pgColumns))

	err := repo.Update(context.Background(), job, models.JobSubmitted)

	assert.ErrorIs(t, err, models.ErrJobNotFound)
	assert.NotErrorIs(t, err, models.ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_List(t *testing.T) {
	mock, repo := newTestPostgres(t)
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(pgColumns)
	pgJobRow(rows, pgJobID, models.JobCompleted, first)
	pgJobRow(rows, pgRetryID, models.JobSubmitted, first.Add(time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs ORDER BY created_at, id")).
		WillReturnRows(rows)

	jobs, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, pgJobID, jobs[0].ID)
	assert.Equal(t, pgRetryID, jobs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresJobRepository_CreateDuplicate(t *testing.T) {
	mock, repo := newTestPostgres(t)

	mock.ExpectExec("INSERT INTO jobs").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, Message: "duplicate key value"})

	err := repo.Create(context.Background(), newJob(pgJobID, models.JobSubmitted))

	assert.ErrorIs(t, err, models.ErrJobExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
