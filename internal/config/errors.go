package config

import "errors"

var (
	ErrRedisAddrMissing        = errors.New("REDIS_ADDR is required for the redis store backend")
	ErrInvalidRedisDB          = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidRedisTLS         = errors.New("REDIS_TLS must be a boolean")
	ErrFeedURLMissing          = errors.New("PROVIDER_FEED_URL is required")
	ErrInvalidFeedTimeout      = errors.New("FEED_TIMEOUT_SECONDS must be a positive integer")
	ErrInvalidRefreshInterval  = errors.New("FEED_REFRESH_INTERVAL_SECONDS must be a positive integer")
	ErrInvalidStoreBackend     = errors.New("STORE_BACKEND must be one of redis, postgres, memory")
	ErrInvalidPersistTimeout   = errors.New("PERSIST_TIMEOUT_SECONDS must be a positive integer")
	ErrPostgresDSNMissing      = errors.New("POSTGRES_DSN is required for the postgres store backend")
	ErrInvalidTimezone         = errors.New("BOOKING_TIMEZONE must be a valid IANA time zone")
	ErrInvalidDateWindowDays   = errors.New("BOOKING_DATE_WINDOW_DAYS must be a positive integer")
	ErrInvalidReminderLead     = errors.New("REMINDER_LEAD_MINUTES must be a non-negative integer")
	ErrInvalidTaskQueueRetries = errors.New("TASK_QUEUE_MAX_RETRIES must be positive")
	ErrReminderProjectMissing  = errors.New("GCLOUD_PROJECT_ID is required to schedule booking reminders")
	ErrReminderLocationMissing = errors.New("GCLOUD_LOCATION_ID is required to schedule booking reminders")
	ErrReminderQueueMissing    = errors.New("GCLOUD_QUEUE_ID is required to schedule booking reminders")
	ErrReminderTargetMissing   = errors.New("GCLOUD_TARGET_URL is required to schedule booking reminders")
)
