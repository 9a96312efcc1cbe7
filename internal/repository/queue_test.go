package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisJobQueue_FIFOAndAck(t *testing.T) {
	// Подготовка
	mr, client := newTestRedis(t)
	queue := NewRedisJobQueue(client, "w1")
	ctx := context.Background()

	// Действие
	for _, id := range []string{"first", "second"} {
		require.NoError(t, queue.Enqueue(ctx, id))
	}
	id, err := queue.Dequeue(ctx, time.Second)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "first", id)
	processing, err := mr.List("jobs:processing:w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, processing)

	require.NoError(t, queue.Ack(ctx, id))
	assert.False(t, mr.Exists("jobs:processing:w1"))

	n, err := queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisJobQueue_RecoverKeepsOrder(t *testing.T) {
	// Подготовка
	_, client := newTestRedis(t)
	queue := NewRedisJobQueue(client, "w1")
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, queue.Enqueue(ctx, id))
	}

	// Воркер забрал две задачи и упал, не подтвердив их
	_, err := queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	_, err = queue.Dequeue(ctx, time.Second)
	require.NoError(t, err)

	// Действие
	recovered, err := queue.Recover(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, recovered)
	order := make([]string, 0, 3)
	for range 3 {
		id, err := queue.Dequeue(ctx, time.Second)
		require.NoError(t, err)
		order = append(order, id)
	}
	assert.Equal(t, []string{"1", "2", "3"}, order)
}

func TestRedisJobQueue_Clear(t *testing.T) {
	mr, client := newTestRedis(t)
	queue := NewRedisJobQueue(client, "w1")
	ctx := context.Background()
	require.NoError(t, queue.Enqueue(ctx, "a"))
	require.NoError(t, queue.Enqueue(ctx, "b"))
	require.NoError(t, mr.Set("job:a", "{}"))

	n, err := queue.Clear(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.False(t, mr.Exists("jobs:queue"))
	assert.True(t, mr.Exists("job:a"))
}
