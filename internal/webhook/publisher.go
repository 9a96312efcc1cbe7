package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/atx_traffic/internal/models"
)

const eventQueueKey = "jobs:events"

// JobEvent - уведомление о завершении задачи
type JobEvent struct {
	JobID      string            `json:"job_id"`
	JobType    models.JobType    `json:"job_type"`
	Status     models.JobStatus  `json:"status"`
	Attempt    int               `json:"attempt"`
	RetriedBy  string            `json:"retried_by,omitempty"`
	Error      string            `json:"error,omitempty"`
	Result     *models.JobResult `json:"results,omitempty"`
	FinishedAt time.Time         `json:"finished_at"`
}

// NewJobEvent собирает событие по записи задачи
func NewJobEvent(job *models.Job) JobEvent {
	return JobEvent{
		JobID:      job.ID,
		JobType:    job.Type,
		Status:     job.Status,
		Attempt:    job.Attempt,
		RetriedBy:  job.RetriedBy,
		Error:      job.Error,
		Result:     job.Result,
		FinishedAt: job.UpdatedAt,
	}
}

// RedisPublisher ставит события в список Redis, откуда их забирает Worker
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// JobFinished публикует событие о задаче в конечном статусе
func (p *RedisPublisher) JobFinished(ctx context.Context, job *models.Job) error {
	payload, err := json.Marshal(NewJobEvent(job))
	if err != nil {
		return fmt.Errorf("failed to marshal job event: %w", err)
	}

	// LPUSH добавляет событие слева, Worker забирает справа
	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish job event: %w: %w", models.ErrStore, err)
	}
	return nil
}
