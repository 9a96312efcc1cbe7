package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/atx_traffic/internal/chart"
	"github.com/shenikar/atx_traffic/internal/config"
	"github.com/shenikar/atx_traffic/internal/dataset"
	"github.com/shenikar/atx_traffic/internal/imagehost"
	"github.com/shenikar/atx_traffic/internal/repository"
	"github.com/shenikar/atx_traffic/internal/scheduler"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/shenikar/atx_traffic/internal/webhook"
	"github.com/shenikar/atx_traffic/internal/worker"
	"github.com/shenikar/atx_traffic/pkg/logger"
	redisclient "github.com/shenikar/atx_traffic/pkg/redis"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, "worker")

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	jobRepo, closeJobStore, err := repository.NewJobStore(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to initialize job store: %v", err)
	}
	defer closeJobStore()

	// У каждого потребителя свой список обрабатываемых задач
	queues := make([]service.JobQueue, cfg.WorkerConcurrency)
	for i := range queues {
		queues[i] = repository.NewRedisJobQueue(redisClient, fmt.Sprintf("%s-%d", cfg.WorkerName, i))
	}

	incidentService := service.NewIncidentService(repository.NewIncidentRepository(redisClient), log)
	jobService := service.NewJobService(jobRepo, queues[0], log, cfg.Location, cfg.JobMaxAttempts)

	// Внешние сервисы
	source := dataset.NewClient(cfg.DatasetURL, cfg.DatasetTimeout, dataset.Parser{
		Tolerance: cfg.GeoTolerance,
		Location:  cfg.Location,
	}, log)
	host := imagehost.NewImgur(cfg.ImgurEndpoint, cfg.ImgurToken, cfg.ImageTimeout)

	handlers := worker.Handlers(
		worker.NewRefreshHandler(source, incidentService, log),
		worker.NewPlotHandler(incidentService, chart.NewRenderer(), host, cfg.Location, log),
		worker.NewDeleteAllHandler(jobService, host, log),
	)
	opts := worker.Options{
		PollTimeout: cfg.WorkerPollTimeout,
		Backoff:     cfg.WorkerBackoff,
	}

	// Уведомления о завершенных задачах включаются через WEBHOOK_URL
	webhookDone := make(chan struct{})
	if cfg.WebhookURL != "" {
		opts.Notifier = webhook.NewRedisPublisher(redisClient)
		webhookWorker := webhook.NewWorker(redisClient, log, webhook.Options{
			URL:         cfg.WebhookURL,
			Secret:      cfg.WebhookSecret,
			Timeout:     cfg.WebhookTimeout,
			MaxRetries:  cfg.WebhookMaxRetries,
			BaseDelay:   cfg.WebhookBaseDelay,
			PollTimeout: cfg.WorkerPollTimeout,
		})
		go func() {
			defer close(webhookDone)
			webhookWorker.Run(ctx)
		}()
	} else {
		close(webhookDone)
	}

	dispatcher := worker.NewDispatcher(jobService, queues, handlers, log, opts)

	// Периодическое обновление данных
	refresh, err := scheduler.New(cfg.RefreshSchedule, jobService, log)
	if err != nil {
		log.Fatalf("Failed to create refresh scheduler: %v", err)
	}
	if err := refresh.StartWithContext(ctx); err != nil {
		log.Fatalf("Failed to start refresh scheduler: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := dispatcher.Run(ctx); err != nil {
			log.WithError(err).Error("Dispatcher stopped with error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("Received shutdown signal, stopping worker...")
	case <-done:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := refresh.StopWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("Refresh scheduler did not stop in time")
	}
	cancel()

	for _, ch := range []chan struct{}{done, webhookDone} {
		select {
		case <-ch:
		case <-shutdownCtx.Done():
			log.Warn("Worker forced to shutdown")
			return
		}
	}
	log.Info("Worker gracefully stopped")
}
