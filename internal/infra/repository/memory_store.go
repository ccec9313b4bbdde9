package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// MemoryBookingStore keeps the ledger in process memory. Bookings are lost
// on restart.
type MemoryBookingStore struct {
	mu       sync.Mutex
	bookings []domain.Booking
	saves    int
}

func NewMemoryBookingStore(initial []domain.Booking) *MemoryBookingStore {
	return &MemoryBookingStore{bookings: slices.Clone(initial)}
}

func (s *MemoryBookingStore) Load(_ context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bookings == nil {
		return []domain.Booking{}, nil
	}
	return slices.Clone(s.bookings), nil
}

func (s *MemoryBookingStore) Save(_ context.Context, bookings []domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = slices.Clone(bookings)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemoryBookingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
