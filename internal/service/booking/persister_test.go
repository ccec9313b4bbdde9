package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// gatedStore blocks its first Save until release is closed.
type gatedStore struct {
	mu      sync.Mutex
	saves   [][]domain.Booking
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *gatedStore) Load(context.Context) ([]domain.Booking, error) {
	return nil, nil
}

func (s *gatedStore) Save(_ context.Context, bookings []domain.Booking) error {
	first := false
	s.once.Do(func() {
		first = true
		close(s.started)
	})
	if first {
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, bookings)
	return nil
}

func (s *gatedStore) saved() [][]domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPersister_CoalescesPendingWrites(t *testing.T) {
	store := newGatedStore()
	p := NewPersister(store, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	a := []domain.Booking{newBooking("a", "p-1", "2026-01-19", "09:00")}
	b := append(a, newBooking("b", "p-1", "2026-01-19", "09:30"))
	c := append(b[:2:2], newBooking("c", "p-1", "2026-01-19", "10:00"))

	p.Schedule(a)
	<-store.started

	p.Schedule(b)
	p.Schedule(c)
	close(store.release)

	waitFor(t, func() bool { return len(store.saved()) == 2 })
	time.Sleep(50 * time.Millisecond)

	saves := store.saved()
	if len(saves) != 2 {
		t.Fatalf("got %d writes, want 2", len(saves))
	}
	if len(saves[0]) != 1 || len(saves[1]) != 3 {
		t.Errorf("writes = %+v, want the first and the latest snapshot", saves)
	}
}

func TestPersister_FlushWritesLatestOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockBookingStore(ctrl)

	latest := []domain.Booking{
		newBooking("a", "p-1", "2026-01-19", "09:00"),
		newBooking("b", "p-1", "2026-01-19", "09:30"),
	}
	store.EXPECT().Save(gomock.Any(), latest).Return(nil).Times(1)

	p := NewPersister(store, time.Second, nil)
	p.Schedule(latest[:1])
	p.Schedule(latest)

	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("second Flush: %v", err)
	}
}

func TestPersister_SaveFailureIsContained(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockBookingStore(ctrl)
	saveErr := errors.New("connection refused")
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saveErr)

	p := NewPersister(store, time.Second, nil)
	l := NewLedger(p)
	l.Hydrate(nil)

	err := p.Flush(context.Background())
	if !errors.Is(err, saveErr) {
		t.Errorf("Flush = %v, want %v", err, saveErr)
	}
	if !l.Hydrated() {
		t.Error("ledger state affected by persistence failure")
	}
}

func TestPersister_AppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockBookingStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ []domain.Booking) error {
			deadline, ok := ctx.Deadline()
			if !ok {
				t.Error("save context has no deadline")
			} else if time.Until(deadline) > 50*time.Millisecond {
				t.Errorf("deadline too far away: %v", time.Until(deadline))
			}
			return nil
		},
	)

	p := NewPersister(store, 50*time.Millisecond, nil)
	p.Schedule(nil)
	if err := p.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}
