package booking

import (
	"errors"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

var ErrAttemptResolved = errors.New("booking attempt already resolved")

type AttemptState int

const (
	AttemptReviewing AttemptState = iota
	AttemptConfirmed
	AttemptRejected
)

func (s AttemptState) String() string {
	switch s {
	case AttemptReviewing:
		return "reviewing"
	case AttemptConfirmed:
		return "confirmed"
	case AttemptRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Attempt is one user's try at reserving a slot. It starts in Reviewing and
// moves to Confirmed or Rejected exactly once.
type Attempt struct {
	provider *domain.Provider
	slot     domain.TimeSlot
	state    AttemptState
	booking  *domain.Booking
}

func NewAttempt(provider *domain.Provider, slot domain.TimeSlot) *Attempt {
	return &Attempt{
		provider: provider,
		slot:     slot,
		state:    AttemptReviewing,
	}
}

func (a *Attempt) State() AttemptState {
	return a.state
}

// Booking returns the created booking once the attempt is confirmed.
func (a *Attempt) Booking() *domain.Booking {
	return a.booking
}

// Confirm re-checks the slot against the ledger immediately before
// committing. A slot taken since the attempt was created rejects it.
func (a *Attempt) Confirm(ledger *Ledger, id string) error {
	if a.state != AttemptReviewing {
		return ErrAttemptResolved
	}

	if ledger.IsBooked(a.slot.Key()) {
		a.state = AttemptRejected
		return domain.ErrDuplicateSlot
	}

	candidate := domain.NewBooking(id, a.provider, a.slot)
	if err := ledger.TryAdd(candidate); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlot) {
			a.state = AttemptRejected
		}
		return err
	}

	a.state = AttemptConfirmed
	a.booking = &candidate
	return nil
}
