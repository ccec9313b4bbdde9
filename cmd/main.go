package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/primind-appointment-booking/internal/config"
	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/handler"
	"github.com/KasumiMercury/primind-appointment-booking/internal/health"
	"github.com/KasumiMercury/primind-appointment-booking/internal/infra/bookingrecorder"
	"github.com/KasumiMercury/primind-appointment-booking/internal/infra/feed"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/logging"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/metrics"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/middleware"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/calendar"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/normalize"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/provider"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/slot"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("appointment-booking")

func main() {
	os.Exit(run())
}

func run() int {
	loadEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	bookingMetrics, err := metrics.NewBookingMetrics()
	if err != nil {
		slog.Error("failed to initialize booking metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery under gcloud
	recorder, err := bookingrecorder.NewRecorder(ctx, bookingrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize booking attempt recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close booking attempt recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	store, storeChecks, closeStore, err := initStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize booking store",
			slog.String("backend", string(cfg.Store.Backend)),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer closeStore()

	persister := booking.NewPersister(store, cfg.Store.PersistTimeout, bookingMetrics)
	persistCtx, stopPersist := context.WithCancel(context.Background())
	persistDone := make(chan struct{})
	go func() {
		defer close(persistDone)
		persister.Run(persistCtx)
	}()
	defer func() {
		stopPersist()
		<-persistDone

		flushCtx, flushCancel := context.WithTimeout(context.Background(), cfg.Store.PersistTimeout)
		defer flushCancel()
		if err := persister.Flush(flushCtx); err != nil {
			slog.Error("failed to flush bookings on shutdown", slog.String("error", err.Error()))
		}
	}()

	ledger := booking.NewLedger(persister)
	booking.HydrateFromStore(ctx, ledger, store)

	feedClient := feed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout)
	catalog := provider.NewCatalog(feedClient, normalize.NewNormalizer(nil), cfg.Feed.RefreshInterval, bookingMetrics)
	go func() {
		if err := catalog.Load(ctx); err != nil {
			slog.Warn("initial provider load failed, waiting for refresh", slog.String("error", err.Error()))
		}
	}()

	window := calendar.NewWindow(cfg.Booking.DateWindowDays, time.Now, cfg.Booking.Location)
	reminders := booking.NewReminders(taskQueue, cfg.Booking.ReminderLead, cfg.Booking.Location, time.Now)
	bookingService := booking.NewService(
		catalog,
		slot.NewGenerator(),
		window,
		ledger,
		domain.NewUUID,
		reminders,
		recorder,
		bookingMetrics,
	)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      moduleName,
		TracerName:  "github.com/KasumiMercury/primind-appointment-booking/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, append(storeChecks,
		health.WithLedger(bookingService),
		health.WithCatalog(catalog),
	)...)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r.Group("/api/v1"),
		handler.NewProviderHandler(catalog, bookingService),
		handler.NewCalendarHandler(window),
		handler.NewBookingHandler(bookingService),
	)

	// gRPC health shares the port with the REST API over h2c.
	mux := http.NewServeMux()
	grpcHealthPath, grpcHealthHandler := healthChecker.GRPCHandler()
	mux.Handle(grpcHealthPath, grpcHealthHandler)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("log_level", cfg.LogLevel.String()),
			slog.String("store_backend", string(cfg.Store.Backend)),
			slog.String("timezone", cfg.Booking.Location.String()),
			slog.Int("date_window_days", cfg.Booking.DateWindowDays),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
