package provider

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/metrics"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/normalize"
)

var ErrRefreshThrottled = errors.New("provider refresh throttled")

const defaultRefreshInterval = 30 * time.Second

// State is a point-in-time view of the catalog. Loading is true until the
// first fetch completes. Err holds the latest fetch failure and is cleared
// when a fetch starts.
type State struct {
	Loading   bool
	Err       error
	Providers []domain.Provider
	FetchedAt time.Time
}

// Catalog holds the providers fetched from the feed. The feed is fetched once
// by Load; later fetches only happen through Refresh.
type Catalog struct {
	feed       domain.ProviderFeed
	normalizer *normalize.Normalizer
	limiter    *rate.Limiter
	metrics    *metrics.BookingMetrics

	fetchMu sync.Mutex
	loaded  bool

	mu    sync.RWMutex
	state State
	byID  map[string]int
}

func NewCatalog(
	feed domain.ProviderFeed,
	normalizer *normalize.Normalizer,
	refreshInterval time.Duration,
	bookingMetrics *metrics.BookingMetrics,
) *Catalog {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Catalog{
		feed:       feed,
		normalizer: normalizer,
		limiter:    rate.NewLimiter(rate.Every(refreshInterval), 1),
		metrics:    bookingMetrics,
		state:      State{Loading: true, Providers: make([]domain.Provider, 0)},
		byID:       make(map[string]int),
	}
}

// Load fetches the feed the first time it is called and is a no-op
// afterwards. It returns the error of the fetch it performed, if any.
func (c *Catalog) Load(ctx context.Context) error {
	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()

	if c.loaded {
		return nil
	}
	c.loaded = true
	// The initial load consumes the refresh token so an immediate Refresh
	// does not hit the feed twice.
	c.limiter.Allow()

	return c.fetch(ctx)
}

// Refresh re-fetches the feed, at most once per refresh interval.
func (c *Catalog) Refresh(ctx context.Context) error {
	if !c.limiter.Allow() {
		return ErrRefreshThrottled
	}

	c.fetchMu.Lock()
	defer c.fetchMu.Unlock()
	c.loaded = true

	return c.fetch(ctx)
}

func (c *Catalog) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Err = nil
	c.mu.Unlock()

	raw, err := c.feed.FetchAvailability(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch provider feed",
			slog.String("error", err.Error()),
		)
		if c.metrics != nil {
			c.metrics.RecordFeedFetch(ctx, "failed")
		}

		c.mu.Lock()
		c.state.Loading = false
		c.state.Err = err
		c.mu.Unlock()
		return err
	}

	providers := c.normalizer.Normalize(raw)
	byID := make(map[string]int, len(providers))
	for i, p := range providers {
		byID[p.ID] = i
	}

	c.mu.Lock()
	c.state = State{
		Providers: providers,
		FetchedAt: time.Now().UTC(),
	}
	c.byID = byID
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordFeedFetch(ctx, "success")
	}
	slog.InfoContext(ctx, "provider catalog loaded",
		slog.Int("record_count", len(raw)),
		slog.Int("provider_count", len(providers)),
	)
	return nil
}

func (c *Catalog) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.state
	s.Providers = slices.Clone(c.state.Providers)
	return s
}

// Get returns a copy of the provider with id.
func (c *Catalog) Get(id string) (*domain.Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	p := c.state.Providers[i]
	p.Availability = slices.Clone(p.Availability)
	return &p, nil
}
