package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-appointment-booking/internal/service/provider"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// LedgerState reports whether persisted bookings have been loaded.
type LedgerState interface {
	Ready() bool
}

// CatalogState exposes the provider catalog's fetch state.
type CatalogState interface {
	State() provider.State
}

type Option func(*Checker)

func WithRedis(client *redis.Client) Option {
	return func(c *Checker) { c.redisClient = client }
}

func WithPostgres(db *gorm.DB) Option {
	return func(c *Checker) { c.db = db }
}

func WithLedger(ledger LedgerState) Option {
	return func(c *Checker) { c.ledger = ledger }
}

func WithCatalog(catalog CatalogState) Option {
	return func(c *Checker) { c.catalog = catalog }
}

// Checker performs health checks on service dependencies.
type Checker struct {
	redisClient *redis.Client
	db          *gorm.DB
	ledger      LedgerState
	catalog     CatalogState
	version     string
}

func NewChecker(version string, opts ...Option) *Checker {
	c := &Checker{version: version}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs every configured check. Store and ledger failures make the
// service unhealthy; a provider feed failure only degrades it, since bookings
// already in the ledger stay readable.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		status.record("redis", timed(func() error {
			return c.redisClient.Ping(checkCtx).Err()
		}))
	}

	if c.db != nil {
		status.record("postgres", timed(func() error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(checkCtx)
		}))
	}

	if c.ledger != nil {
		result := CheckResult{Status: StatusHealthy}
		if !c.ledger.Ready() {
			result = CheckResult{Status: StatusUnhealthy, Error: "bookings not hydrated"}
		}
		status.record("ledger", result)
	}

	if c.catalog != nil {
		state := c.catalog.State()
		result := CheckResult{Status: StatusHealthy}
		switch {
		case state.Err != nil:
			result = CheckResult{Status: StatusDegraded, Error: state.Err.Error()}
		case state.Loading:
			result = CheckResult{Status: StatusDegraded, Error: "loading"}
		}
		status.record("provider_feed", result)
	}

	return status
}

func (s *HealthStatus) record(name string, result CheckResult) {
	s.Checks[name] = result
	switch {
	case result.Status == StatusUnhealthy:
		s.Status = StatusUnhealthy
	case result.Status == StatusDegraded && s.Status == StatusHealthy:
		s.Status = StatusDegraded
	}
}

func timed(check func() error) CheckResult {
	start := time.Now()
	if err := check(); err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}
	return CheckResult{
		Status:    StatusHealthy,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status == StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
