package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/atx_traffic/internal/config"
	"github.com/shenikar/atx_traffic/internal/geocode"
	v1 "github.com/shenikar/atx_traffic/internal/handler/http/v1"
	"github.com/shenikar/atx_traffic/internal/repository"
	"github.com/shenikar/atx_traffic/internal/service"
	"github.com/shenikar/atx_traffic/pkg/logger"
	redisclient "github.com/shenikar/atx_traffic/pkg/redis"

	_ "github.com/shenikar/atx_traffic/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Austin Traffic Incidents API
// @version 1.0
// @description Query API over the Austin traffic incident dataset with asynchronous refresh and plot jobs.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, "api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Хранилище задач выбирается конфигурацией
	jobRepo, closeJobStore, err := repository.NewJobStore(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to initialize job store: %v", err)
	}
	defer closeJobStore()

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(redisClient)
	jobQueue := repository.NewRedisJobQueue(redisClient, cfg.WorkerName)

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, log)
	jobService := service.NewJobService(jobRepo, jobQueue, log, cfg.Location, cfg.JobMaxAttempts)

	var geocoder service.Geocoder
	if cfg.GeocoderURL != "" {
		geocoder = geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderTimeout)
	}

	health := func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, jobService, geocoder, health, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
