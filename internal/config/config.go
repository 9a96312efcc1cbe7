package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды хранилища задач
const (
	JobStoreRedis    = "redis"
	JobStorePostgres = "postgres"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Job Store Config
	JobStore       string `env:"JOB_STORE" envDefault:"redis"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`

	// Dataset Config
	DatasetURL     string        `env:"DATASET_URL"`
	DatasetTimeout time.Duration `env:"DATASET_TIMEOUT" envDefault:"2m"`
	GeoTolerance   float64       `env:"GEO_TOLERANCE" envDefault:"5"`
	TimeZone       string        `env:"TIMEZONE" envDefault:"America/Chicago"`
	Location       *time.Location

	// Image Host Config
	ImgurToken    string        `env:"IMGUR_ACCESS_TOKEN"`
	ImgurEndpoint string        `env:"IMGUR_ENDPOINT" envDefault:"https://api.imgur.com/3/image"`
	ImageTimeout  time.Duration `env:"IMAGE_TIMEOUT" envDefault:"30s"`

	// Geocoder Config
	GeocoderURL     string        `env:"GEOCODER_URL"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"10s"`

	// Worker Config
	JobMaxAttempts    int           `env:"JOB_MAX_ATTEMPTS" envDefault:"3"`
	WorkerName        string        `env:"WORKER_NAME"`
	WorkerConcurrency int           `env:"WORKER_CONCURRENCY" envDefault:"1"`
	WorkerPollTimeout time.Duration `env:"WORKER_POLL_TIMEOUT" envDefault:"5s"`
	WorkerBackoff     time.Duration `env:"WORKER_BACKOFF" envDefault:"2s"`
	RefreshSchedule   string        `env:"REFRESH_SCHEDULE"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Rate limit Config
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// DefaultDatasetURL - снимок набора данных о дорожных происшествиях Остина
const DefaultDatasetURL = "https://data.austintexas.gov/api/views/dx9v-zd7x/rows.json?accessType=DOWNLOAD"

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		JobStore:          strings.ToLower(getEnv("JOB_STORE", JobStoreRedis)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "file://migrations"),
		DatasetURL:        getEnv("DATASET_URL", DefaultDatasetURL),
		DatasetTimeout:    getEnvAsDuration("DATASET_TIMEOUT", 2*time.Minute),
		GeoTolerance:      getEnvAsFloat("GEO_TOLERANCE", 5),
		TimeZone:          getEnv("TIMEZONE", "America/Chicago"),
		ImgurToken:        os.Getenv("IMGUR_ACCESS_TOKEN"),
		ImgurEndpoint:     getEnv("IMGUR_ENDPOINT", "https://api.imgur.com/3/image"),
		ImageTimeout:      getEnvAsDuration("IMAGE_TIMEOUT", 30*time.Second),
		GeocoderURL:       os.Getenv("GEOCODER_URL"),
		GeocoderTimeout:   getEnvAsDuration("GEOCODER_TIMEOUT", 10*time.Second),
		JobMaxAttempts:    getEnvAsInt("JOB_MAX_ATTEMPTS", 3),
		WorkerName:        getEnv("WORKER_NAME", defaultWorkerName()),
		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 1),
		WorkerPollTimeout: getEnvAsDuration("WORKER_POLL_TIMEOUT", 5*time.Second),
		WorkerBackoff:     getEnvAsDuration("WORKER_BACKOFF", 2*time.Second),
		RefreshSchedule:   os.Getenv("REFRESH_SCHEDULE"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries: getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:  getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		RateLimitRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 10),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		for _, key := range strings.Split(apiKeysStr, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate проверяет согласованность параметров и загружает часовой пояс
func (c *Config) validate() error {
	switch c.JobStore {
	case JobStoreRedis:
	case JobStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required when JOB_STORE=%s", JobStorePostgres)
		}
	default:
		return fmt.Errorf("unsupported JOB_STORE %q", c.JobStore)
	}

	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}
	c.Location = loc

	if c.JobMaxAttempts < 1 {
		c.JobMaxAttempts = 1
	}
	if c.WorkerConcurrency < 1 {
		c.WorkerConcurrency = 1
	}
	return nil
}

// defaultWorkerName - имя воркера для его списка обрабатываемых задач в очереди
func defaultWorkerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "worker"
	}
	return host
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
