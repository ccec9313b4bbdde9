package domain

import "context"

//go:generate mockgen -source=booking_store.go -destination=booking_store_mock.go -package=domain

// BookingStore persists the complete booking ledger. Save always replaces
// everything previously stored.
type BookingStore interface {
	Load(ctx context.Context) ([]Booking, error)
	Save(ctx context.Context, bookings []Booking) error
}
