package config

import (
	"os"
	"strings"
	"time"
)

const (
	storeBackendEnv   = "STORE_BACKEND"
	storeKeyEnv       = "BOOKING_STORE_KEY"
	persistTimeoutEnv = "PERSIST_TIMEOUT_SECONDS"

	defaultStoreKey              = "BOOKINGS_V1"
	defaultPersistTimeoutSeconds = 5
)

type StoreBackend string

const (
	StoreBackendRedis    StoreBackend = "redis"
	StoreBackendPostgres StoreBackend = "postgres"
	StoreBackendMemory   StoreBackend = "memory"
)

type StoreConfig struct {
	Backend        StoreBackend
	Key            string
	PersistTimeout time.Duration
}

func LoadStoreConfig() (*StoreConfig, error) {
	backend := StoreBackend(strings.ToLower(strings.TrimSpace(os.Getenv(storeBackendEnv))))
	switch backend {
	case "":
		backend = StoreBackendRedis
	case StoreBackendRedis, StoreBackendPostgres, StoreBackendMemory:
	default:
		return nil, ErrInvalidStoreBackend
	}

	key := os.Getenv(storeKeyEnv)
	if key == "" {
		key = defaultStoreKey
	}

	timeout, err := positiveIntEnv(persistTimeoutEnv, defaultPersistTimeoutSeconds, ErrInvalidPersistTimeout)
	if err != nil {
		return nil, err
	}

	return &StoreConfig{
		Backend:        backend,
		Key:            key,
		PersistTimeout: time.Duration(timeout) * time.Second,
	}, nil
}
