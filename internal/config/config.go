package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/logging"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	Feed      *FeedConfig
	Store     *StoreConfig
	Redis     *RedisConfig
	Postgres  *PostgresConfig
	Booking   *BookingConfig
	TaskQueue TaskQueueConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string

	GCloudProjectID  string
	GCloudLocationID string
	GCloudQueueID    string
	GCloudTargetURL  string

	MaxRetries int
}

// Load reads every concern's configuration and reports all malformed
// variables together.
func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	var errs []error

	feedConfig, err := LoadFeedConfig()
	errs = append(errs, err)

	storeConfig, err := LoadStoreConfig()
	errs = append(errs, err)

	redisConfig, err := LoadRedisConfig()
	errs = append(errs, err)

	bookingConfig, err := LoadBookingConfig()
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		Feed:     feedConfig,
		Store:    storeConfig,
		Redis:    redisConfig,
		Postgres: LoadPostgresConfig(),
		Booking:  bookingConfig,
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,

			GCloudProjectID:  os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID: os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:    os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudTargetURL:  os.Getenv("GCLOUD_TARGET_URL"),

			MaxRetries: maxRetries,
		},
	}, nil
}

// positiveIntEnv returns def when key is unset and errInvalid when it is set
// to anything but a positive integer.
func positiveIntEnv(key string, def int, errInvalid error) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, errInvalid
	}
	return parsed, nil
}
