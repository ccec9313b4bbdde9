package booking

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

type recordingSink struct {
	mu        sync.Mutex
	snapshots [][]domain.Booking
}

func (s *recordingSink) Schedule(bookings []domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, bookings)
}

func (s *recordingSink) calls() [][]domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots
}

func newBooking(id, providerID, date, start string) domain.Booking {
	return domain.Booking{
		ID:         id,
		ProviderID: providerID,
		Date:       date,
		StartTime:  start,
	}
}

func TestLedger_TryAddBeforeHydrate(t *testing.T) {
	sink := &recordingSink{}
	l := NewLedger(sink)

	err := l.TryAdd(newBooking("b-1", "p-1", "2026-01-19", "09:00"))
	if !errors.Is(err, domain.ErrLedgerNotHydrated) {
		t.Fatalf("got %v, want ErrLedgerNotHydrated", err)
	}
	if l.Hydrated() {
		t.Error("ledger reports hydrated")
	}
	if len(sink.calls()) != 0 {
		t.Error("rejected add scheduled a write")
	}
}

func TestLedger_Uniqueness(t *testing.T) {
	tests := []struct {
		name    string
		second  domain.Booking
		wantErr error
	}{
		{name: "same key", second: newBooking("b-2", "p-1", "2026-01-19", "09:00"), wantErr: domain.ErrDuplicateSlot},
		{name: "other start", second: newBooking("b-2", "p-1", "2026-01-19", "09:30")},
		{name: "other date", second: newBooking("b-2", "p-1", "2026-01-20", "09:00")},
		{name: "other provider", second: newBooking("b-2", "p-2", "2026-01-19", "09:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger(nil)
			l.Hydrate(nil)

			if err := l.TryAdd(newBooking("b-1", "p-1", "2026-01-19", "09:00")); err != nil {
				t.Fatalf("first add: %v", err)
			}
			before := l.Snapshot()

			err := l.TryAdd(tt.second)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("second add = %v, want %v", err, tt.wantErr)
			}

			after := l.Snapshot()
			if tt.wantErr != nil {
				if !reflect.DeepEqual(before, after) {
					t.Errorf("rejected add changed the ledger: %+v", after)
				}
				return
			}
			if len(after) != 2 {
				t.Errorf("got %d bookings, want 2", len(after))
			}
		})
	}
}

func TestLedger_ConcurrentAddsKeepOneWinner(t *testing.T) {
	l := NewLedger(nil)
	l.Hydrate(nil)

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.TryAdd(newBooking("b", "p-1", "2026-01-19", "09:00")); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("accepted %d concurrent adds, want 1", accepted)
	}
	if got := len(l.Snapshot()); got != 1 {
		t.Errorf("ledger holds %d bookings, want 1", got)
	}
}

func TestLedger_HydrateIdempotent(t *testing.T) {
	records := []domain.Booking{
		newBooking("b-1", "p-1", "2026-01-19", "09:00"),
		newBooking("b-2", "p-2", "2026-01-19", "09:00"),
	}

	once := NewLedger(nil)
	once.Hydrate(records)

	twice := NewLedger(nil)
	twice.Hydrate(records)
	twice.Hydrate(records)

	if !reflect.DeepEqual(once.Snapshot(), twice.Snapshot()) {
		t.Errorf("hydrating twice differs: %+v vs %+v", once.Snapshot(), twice.Snapshot())
	}
	if !twice.Hydrated() {
		t.Error("ledger not hydrated")
	}
}

func TestLedger_HydrateLastCallWins(t *testing.T) {
	l := NewLedger(nil)
	l.Hydrate([]domain.Booking{newBooking("b-1", "p-1", "2026-01-19", "09:00")})
	l.Hydrate([]domain.Booking{newBooking("b-2", "p-2", "2026-01-20", "10:00")})

	if l.IsBooked(domain.SlotKey{ProviderID: "p-1", Date: "2026-01-19", StartTime: "09:00"}) {
		t.Error("first hydration still visible")
	}
	if !l.IsBooked(domain.SlotKey{ProviderID: "p-2", Date: "2026-01-20", StartTime: "10:00"}) {
		t.Error("second hydration not visible")
	}
}

func TestLedger_SnapshotIsACopy(t *testing.T) {
	l := NewLedger(nil)
	l.Hydrate([]domain.Booking{newBooking("b-1", "p-1", "2026-01-19", "09:00")})

	snap := l.Snapshot()
	snap[0].StartTime = "23:00"

	if l.Snapshot()[0].StartTime != "09:00" {
		t.Error("mutating a snapshot changed the ledger")
	}
}

func TestLedger_CountForProvider(t *testing.T) {
	l := NewLedger(nil)
	l.Hydrate([]domain.Booking{
		newBooking("b-1", "p-1", "2026-01-19", "09:00"),
		newBooking("b-2", "p-1", "2026-01-19", "09:30"),
		newBooking("b-3", "p-2", "2026-01-19", "09:00"),
	})

	tests := []struct {
		providerID string
		want       int
	}{
		{providerID: "p-1", want: 2},
		{providerID: "p-2", want: 1},
		{providerID: "p-3", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.providerID, func(t *testing.T) {
			if got := l.CountForProvider(tt.providerID); got != tt.want {
				t.Errorf("CountForProvider(%s) = %d, want %d", tt.providerID, got, tt.want)
			}
		})
	}
}

func TestLedger_SchedulesWriteAfterEachMutation(t *testing.T) {
	sink := &recordingSink{}
	l := NewLedger(sink)

	l.Hydrate(nil)
	_ = l.TryAdd(newBooking("b-1", "p-1", "2026-01-19", "09:00"))
	_ = l.TryAdd(newBooking("b-2", "p-1", "2026-01-19", "09:00"))

	calls := sink.calls()
	if len(calls) != 2 {
		t.Fatalf("got %d scheduled writes, want 2", len(calls))
	}
	if len(calls[0]) != 0 || len(calls[1]) != 1 {
		t.Errorf("unexpected snapshots: %+v", calls)
	}
}
