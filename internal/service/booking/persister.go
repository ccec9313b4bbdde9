package booking

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/metrics"
)

const defaultPersistTimeout = 5 * time.Second

// Persister writes ledger snapshots to a BookingStore in the background.
// At most one write is pending at a time: snapshots scheduled while a write
// is pending replace it, so the store only ever receives the latest state.
type Persister struct {
	store   domain.BookingStore
	timeout time.Duration
	metrics *metrics.BookingMetrics

	mu         sync.Mutex
	pending    []domain.Booking
	hasPending bool

	// writeMu makes taking the pending snapshot and writing it one step, so
	// an older snapshot can never be written after a newer one.
	writeMu sync.Mutex
	notify  chan struct{}
}

func NewPersister(store domain.BookingStore, timeout time.Duration, bookingMetrics *metrics.BookingMetrics) *Persister {
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	return &Persister{
		store:   store,
		timeout: timeout,
		metrics: bookingMetrics,
		notify:  make(chan struct{}, 1),
	}
}

// Schedule replaces the pending snapshot and wakes the writer. It never blocks.
func (p *Persister) Schedule(bookings []domain.Booking) {
	p.mu.Lock()
	p.pending = slices.Clone(bookings)
	p.hasPending = true
	p.mu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// Run writes pending snapshots until ctx is done. Call Flush afterwards to
// drain a write scheduled after Run returned.
func (p *Persister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.notify:
			_ = p.writePending(context.WithoutCancel(ctx))
		}
	}
}

// Flush synchronously writes the pending snapshot, if any.
func (p *Persister) Flush(ctx context.Context) error {
	return p.writePending(ctx)
}

func (p *Persister) take() ([]domain.Booking, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasPending {
		return nil, false
	}
	snapshot := p.pending
	p.pending = nil
	p.hasPending = false
	return snapshot, true
}

func (p *Persister) writePending(ctx context.Context) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	snapshot, ok := p.take()
	if !ok {
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.store.Save(writeCtx, snapshot)
	elapsed := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "failed to persist bookings",
			slog.Int("booking_count", len(snapshot)),
			slog.String("error", err.Error()),
		)
		if p.metrics != nil {
			p.metrics.RecordPersist(ctx, "failed", elapsed)
		}
		return err
	}

	slog.DebugContext(ctx, "bookings persisted",
		slog.Int("booking_count", len(snapshot)),
		slog.Duration("duration", elapsed),
	)
	if p.metrics != nil {
		p.metrics.RecordPersist(ctx, "success", elapsed)
	}
	return nil
}
