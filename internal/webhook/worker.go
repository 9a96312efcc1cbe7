package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Options - параметры доставки вебхуков
type Options struct {
	URL         string
	Secret      string
	Timeout     time.Duration
	MaxRetries  int
	BaseDelay   time.Duration
	PollTimeout time.Duration
}

// Worker доставляет события о задачах на внешний URL
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	opts        Options
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, opts Options) *Worker {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 5 * time.Second
	}
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		opts:        opts,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Run забирает события из очереди и доставляет их до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	for {
		if ctx.Err() != nil {
			w.logger.Info("Stopping webhook worker.")
			return
		}

		// BRPOP забирает самое старое событие, ожидание ограничено PollTimeout
		result, err := w.redisClient.BRPop(ctx, w.opts.PollTimeout, eventQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop job event from Redis")
			w.wait(ctx, w.opts.BaseDelay)
			continue
		}

		// result[0] - ключ, result[1] - значение
		if err := w.Deliver(ctx, []byte(result[1])); err != nil {
			w.logger.WithError(err).Error("Failed to deliver job event")
		}
	}
}

// Deliver отправляет событие с экспоненциальной задержкой между попытками
func (w *Worker) Deliver(ctx context.Context, payload []byte) error {
	if w.opts.URL == "" {
		return nil
	}

	delay := w.opts.BaseDelay
	var lastErr error
	for i := 0; i < w.opts.MaxRetries; i++ {
		if i > 0 {
			w.logger.WithError(lastErr).Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, w.opts.MaxRetries-i)
			if !w.wait(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2
		}
		if lastErr = w.send(ctx, payload); lastErr == nil {
			w.logger.Debug("Webhook delivered successfully.")
			return nil
		}
	}
	return fmt.Errorf("webhook not delivered after %d attempts: %w", w.opts.MaxRetries, lastErr)
}

func (w *Worker) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.opts.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// HMAC подпись добавляется, только если задан WEBHOOK_SECRET
	if w.opts.Secret != "" {
		req.Header.Set("X-Webhook-Signature", Sign(payload, w.opts.Secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (w *Worker) wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Sign возвращает HMAC-SHA256 подпись данных в hex
func Sign(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
