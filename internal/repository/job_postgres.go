package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

// DB - подмножество методов pgxpool.Pool, которым пользуется репозиторий
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// код ошибки Postgres для нарушения уникальности
const uniqueViolation = "23505"

// PostgresJobRepository хранит задачи в таблице jobs
type PostgresJobRepository struct {
	db DB
}

func NewPostgresJobRepository(db DB) service.JobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

const jobColumns = `
	id::text,
	job_type,
	start_epoch,
	end_epoch,
	status,
	attempt,
	max_attempts,
	COALESCE(parent_id::text, ''),
	COALESCE(retried_by::text, ''),
	error,
	result,
	created_at,
	updated_at`

// Create создает новую запись о задаче в бд
func (r *PostgresJobRepository) Create(ctx context.Context, job *models.Job) error {
	result, err := encodeResult(job.Result)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO jobs (id, job_type, start_epoch, end_epoch, status, attempt, max_attempts, parent_id, error, result, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = r.db.Exec(ctx, query,
		job.ID,
		string(job.Type),
		job.Start,
		job.End,
		string(job.Status),
		job.Attempt,
		job.MaxAttempts,
		nullable(job.ParentID),
		job.Error,
		result,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("job with id %s: %w", job.ID, models.ErrJobExists)
		}
		return storeError("create job", err)
	}
	return nil
}

// Get возвращает задачу по идентификатору
func (r *PostgresJobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	// колонка id имеет тип UUID, другой идентификатор в таблице не встречается
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("job with id %s: %w", id, models.ErrJobNotFound)
	}
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1;`
	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job with id %s: %w", id, models.ErrJobNotFound)
		}
		return nil, storeError("get job by id", err)
	}
	return job, nil
}

// List возвращает все задачи в порядке создания
func (r *PostgresJobRepository) List(ctx context.Context) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_at, id;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storeError("list jobs", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, storeError("scan job row", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate jobs", err)
	}
	return jobs, nil
}

// Update обновляет задачу, только если ее текущий статус равен expected
func (r *PostgresJobRepository) Update(ctx context.Context, job *models.Job, expected models.JobStatus) error {
	if _, err := uuid.Parse(job.ID); err != nil {
		return fmt.Errorf("job with id %s: %w", job.ID, models.ErrJobNotFound)
	}
	result, err := encodeResult(job.Result)
	if err != nil {
		return err
	}
	query := `
		UPDATE jobs SET
			status = $2,
			retried_by = $3,
			error = $4,
			result = $5,
			updated_at = $6
		WHERE id = $1 AND status = $7;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		job.ID,
		string(job.Status),
		nullable(job.RetriedBy),
		job.Error,
		result,
		job.UpdatedAt,
		string(expected),
	)
	if err != nil {
		return storeError("update job", err)
	}

	// Если ни одна строка не обновлена, задачи нет или ее статус уже другой
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.Get(ctx, job.ID); err != nil {
			return err
		}
		return fmt.Errorf("job %s is no longer %s: %w", job.ID, expected, models.ErrStatusConflict)
	}
	return nil
}

// DeleteAll удаляет все задачи
func (r *PostgresJobRepository) DeleteAll(ctx context.Context) (int, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs;`)
	if err != nil {
		return 0, storeError("delete jobs", err)
	}
	return int(cmdTag.RowsAffected()), nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var (
		job     models.Job
		jobType string
		status  string
		result  []byte
	)
	err := row.Scan(
		&job.ID,
		&jobType,
		&job.Start,
		&job.End,
		&status,
		&job.Attempt,
		&job.MaxAttempts,
		&job.ParentID,
		&job.RetriedBy,
		&job.Error,
		&result,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Type = models.JobType(jobType)
	job.Status = models.JobStatus(status)
	if len(result) > 0 {
		job.Result = &models.JobResult{}
		if err := json.Unmarshal(result, job.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job result: %w", err)
		}
	}
	return &job, nil
}

func encodeResult(result *models.JobResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	val, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job result: %w", err)
	}
	return val, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
