package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-appointment-booking/internal/config"
	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/health"
	"github.com/KasumiMercury/primind-appointment-booking/internal/infra/repository"
)

// initStore opens the configured booking store. The returned options add the
// store's connection to the health checks.
func initStore(ctx context.Context, cfg *config.Config) (domain.BookingStore, []health.Option, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return initRedisStore(ctx, cfg)
	case config.StoreBackendPostgres:
		return initPostgresStore(ctx, cfg)
	case config.StoreBackendMemory:
		slog.Warn("using in-memory booking store, bookings are lost on restart")
		return repository.NewMemoryBookingStore(nil), nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: %q", repository.ErrUnknownBackend, cfg.Store.Backend)
	}
}

func initRedisStore(ctx context.Context, cfg *config.Config) (domain.BookingStore, []health.Option, func(), error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	closeClient := func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		closeClient()
		return nil, nil, nil, fmt.Errorf("instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		closeClient()
		return nil, nil, nil, fmt.Errorf("instrument redis metrics: %w", err)
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		closeClient()
		return nil, nil, nil, fmt.Errorf("%w: %w", repository.ErrRedisConnection, err)
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
		slog.String("key", cfg.Store.Key),
	)

	store := repository.NewRedisBookingStore(redisClient, cfg.Store.Key)
	return store, []health.Option{health.WithRedis(redisClient)}, closeClient, nil
}

func initPostgresStore(ctx context.Context, cfg *config.Config) (domain.BookingStore, []health.Option, func(), error) {
	db, err := repository.OpenPostgres(cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	closeDB := func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Warn("failed to close postgres connection", slog.String("error", err.Error()))
		}
	}

	store, err := repository.NewPostgresBookingStore(ctx, db)
	if err != nil {
		closeDB()
		return nil, nil, nil, err
	}

	slog.Info("postgres connected")

	return store, []health.Option{health.WithPostgres(db)}, closeDB, nil
}
