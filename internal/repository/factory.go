package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/atx_traffic/internal/config"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/shenikar/atx_traffic/pkg/postgres"
	"github.com/sirupsen/logrus"
)

// NewJobStore выбирает хранилище задач по JOB_STORE.
// Для postgres применяются миграции и открывается пул, closeFn закрывает его.
func NewJobStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, log *logrus.Logger) (service.JobRepository, func(), error) {
	if cfg.JobStore != config.JobStorePostgres {
		return NewRedisJobRepository(redisClient), func() {}, nil
	}

	// Запуск миграций
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("Successfully connected to PostgreSQL")
	return NewPostgresJobRepository(dbpool), dbpool.Close, nil
}
