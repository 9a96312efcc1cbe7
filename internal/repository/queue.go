package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/shenikar/atx_traffic/internal/service"
)

const (
	jobQueueKey          = "jobs:queue"
	processingKeyPattern = "jobs:processing:%s"
)

// RedisJobQueue - надежная очередь на списках Redis.
// Новые идентификаторы добавляются слева, воркер забирает справа через BLMOVE в свой список обработки.
type RedisJobQueue struct {
	redisClient   *redis.Client
	processingKey string
}

// NewRedisJobQueue создает очередь. consumer задает имя списка обработки этого воркера.
func NewRedisJobQueue(redisClient *redis.Client, consumer string) service.JobQueue {
	if consumer == "" {
		consumer = "default"
	}
	return &RedisJobQueue{
		redisClient:   redisClient,
		processingKey: fmt.Sprintf(processingKeyPattern, consumer),
	}
}

// Enqueue добавляет идентификатор задачи в очередь
func (q *RedisJobQueue) Enqueue(ctx context.Context, id string) error {
	if err := q.redisClient.LPush(ctx, jobQueueKey, id).Err(); err != nil {
		return storeError("enqueue job", err)
	}
	return nil
}

// Dequeue блокируется до timeout в ожидании идентификатора.
// Идентификатор остается в списке обработки до вызова Ack.
func (q *RedisJobQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	id, err := q.redisClient.BLMove(ctx, jobQueueKey, q.processingKey, "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrQueueEmpty
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", storeError("dequeue job", err)
	}
	return id, nil
}

// Ack убирает обработанный идентификатор из списка обработки
func (q *RedisJobQueue) Ack(ctx context.Context, id string) error {
	if err := q.redisClient.LRem(ctx, q.processingKey, 1, id).Err(); err != nil {
		return storeError("ack job", err)
	}
	return nil
}

// Recover возвращает в голову очереди идентификаторы, не подтвержденные после падения воркера
func (q *RedisJobQueue) Recover(ctx context.Context) (int, error) {
	recovered := 0
	for {
		// Самый старый элемент списка обработки должен оказаться крайним справа
		err := q.redisClient.LMove(ctx, q.processingKey, jobQueueKey, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return recovered, nil
		}
		if err != nil {
			return recovered, storeError("recover jobs", err)
		}
		recovered++
	}
}

// Len возвращает количество ожидающих идентификаторов
func (q *RedisJobQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.redisClient.LLen(ctx, jobQueueKey).Result()
	if err != nil {
		return 0, storeError("get queue length", err)
	}
	return n, nil
}

// Clear отбрасывает все ожидающие идентификаторы, записи задач не затрагиваются
func (q *RedisJobQueue) Clear(ctx context.Context) (int64, error) {
	pipe := q.redisClient.TxPipeline()
	length := pipe.LLen(ctx, jobQueueKey)
	pipe.Del(ctx, jobQueueKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, storeError("clear job queue", err)
	}
	return length.Val(), nil
}
