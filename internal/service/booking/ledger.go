package booking

import (
	"slices"
	"sync"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// SnapshotSink receives the full ledger contents after every mutation.
type SnapshotSink interface {
	Schedule(bookings []domain.Booking)
}

// Ledger is the authoritative set of confirmed bookings. All mutations are
// serialized; at most one booking exists per SlotKey once hydrated.
type Ledger struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	keys     map[domain.SlotKey]struct{}
	hydrated bool
	sink     SnapshotSink
}

func NewLedger(sink SnapshotSink) *Ledger {
	return &Ledger{
		bookings: make([]domain.Booking, 0),
		keys:     make(map[domain.SlotKey]struct{}),
		sink:     sink,
	}
}

// Hydrate replaces the whole ledger with records and marks it hydrated.
// Calling it again replaces the contents again.
func (l *Ledger) Hydrate(records []domain.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.schedule(l.replace(records))
}

// restore hydrates from the store's own contents without writing them back.
func (l *Ledger) restore(records []domain.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.replace(records)
}

func (l *Ledger) replace(records []domain.Booking) []domain.Booking {
	l.bookings = slices.Clone(records)
	if l.bookings == nil {
		l.bookings = make([]domain.Booking, 0)
	}
	l.keys = make(map[domain.SlotKey]struct{}, len(l.bookings))
	for _, b := range l.bookings {
		l.keys[b.Key()] = struct{}{}
	}
	l.hydrated = true

	return slices.Clone(l.bookings)
}

// TryAdd appends candidate unless a booking with the same SlotKey exists.
func (l *Ledger) TryAdd(candidate domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.hydrated {
		return domain.ErrLedgerNotHydrated
	}
	if _, exists := l.keys[candidate.Key()]; exists {
		return domain.ErrDuplicateSlot
	}

	l.bookings = append(l.bookings, candidate)
	l.keys[candidate.Key()] = struct{}{}

	l.schedule(slices.Clone(l.bookings))
	return nil
}

// schedule is called with mu held so snapshots reach the sink in mutation
// order. The sink must not block.
func (l *Ledger) schedule(snapshot []domain.Booking) {
	if l.sink != nil {
		l.sink.Schedule(snapshot)
	}
}

// Snapshot returns a copy of the bookings in insertion order.
func (l *Ledger) Snapshot() []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.bookings)
}

func (l *Ledger) Hydrated() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hydrated
}

// IsBooked uses the same key comparison as TryAdd.
func (l *Ledger) IsBooked(key domain.SlotKey) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, exists := l.keys[key]
	return exists
}

func (l *Ledger) CountForProvider(providerID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	count := 0
	for _, b := range l.bookings {
		if b.ProviderID == providerID {
			count++
		}
	}
	return count
}
