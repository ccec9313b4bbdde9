package domain

import (
	"context"
	"time"
)

type BookingOutcome string

const (
	BookingOutcomeConfirmed BookingOutcome = "confirmed"
	BookingOutcomeRejected  BookingOutcome = "rejected"
)

type BookingAttemptRecord struct {
	ProviderID string
	Date       string
	StartTime  string
	Outcome    BookingOutcome
	Reason     string
	At         time.Time
}

type BookingAttemptRecorder interface {
	RecordAttempt(ctx context.Context, record BookingAttemptRecord) error
	Close() error
}
