package bookingrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.BookingAttemptRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordAttempt(_ context.Context, _ domain.BookingAttemptRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
