package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

const jobKeyPrefix = "job:"

// RedisJobRepository хранит задачи как JSON-строки с ключом job:<id>
type RedisJobRepository struct {
	redisClient *redis.Client
}

func NewRedisJobRepository(redisClient *redis.Client) service.JobRepository {
	return &RedisJobRepository{
		redisClient: redisClient,
	}
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// Create сохраняет новую задачу. Идентификатор не может быть использован повторно.
func (r *RedisJobRepository) Create(ctx context.Context, job *models.Job) error {
	val, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	ok, err := r.redisClient.SetNX(ctx, jobKey(job.ID), val, 0).Result()
	if err != nil {
		return storeError("create job", err)
	}
	if !ok {
		return fmt.Errorf("job with id %s: %w", job.ID, models.ErrJobExists)
	}
	return nil
}

// Get возвращает задачу по идентификатору
func (r *RedisJobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	val, err := r.redisClient.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("job with id %s: %w", id, models.ErrJobNotFound)
		}
		return nil, storeError("get job", err)
	}
	return decodeJob(val)
}

// List читает все задачи через SCAN и MGET
func (r *RedisJobRepository) List(ctx context.Context) ([]*models.Job, error) {
	keys, err := scanKeys(ctx, r.redisClient, jobKeyPrefix+"*")
	if err != nil {
		return nil, storeError("list job keys", err)
	}

	jobs := make([]*models.Job, 0, len(keys))
	for start := 0; start < len(keys); start += saveBatchSize {
		end := min(start+saveBatchSize, len(keys))
		values, err := r.redisClient.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, storeError("get jobs", err)
		}
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				continue // ключ удален после SCAN
			}
			job, err := decodeJob([]byte(s))
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

// Update записывает задачу через WATCH/MULTI, только если ее статус в хранилище равен expected
func (r *RedisJobRepository) Update(ctx context.Context, job *models.Job, expected models.JobStatus) error {
	key := jobKey(job.ID)
	val, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	err = r.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("job with id %s: %w", job.ID, models.ErrJobNotFound)
			}
			return storeError("get job", err)
		}
		stored, err := decodeJob(current)
		if err != nil {
			return err
		}
		if stored.Status != expected {
			return fmt.Errorf("job %s is %s, expected %s: %w", job.ID, stored.Status, expected, models.ErrStatusConflict)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, val, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("job %s changed during update: %w", job.ID, models.ErrStatusConflict)
	}
	if err != nil && !errors.Is(err, models.ErrStore) && !errors.Is(err, models.ErrNotFound) && !errors.Is(err, models.ErrStatusConflict) {
		return storeError("update job", err)
	}
	return err
}

// DeleteAll удаляет все задачи
func (r *RedisJobRepository) DeleteAll(ctx context.Context) (int, error) {
	n, err := deleteByPattern(ctx, r.redisClient, jobKeyPrefix+"*")
	if err != nil {
		return n, storeError("delete jobs", err)
	}
	return n, nil
}

func decodeJob(val []byte) (*models.Job, error) {
	job := &models.Job{}
	if err := json.Unmarshal(val, job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return job, nil
}
