package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/metrics"
	"github.com/KasumiMercury/primind-appointment-booking/internal/observability/tracing"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/calendar"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/slot"
)

// ProviderCatalog resolves provider IDs to the currently loaded providers.
type ProviderCatalog interface {
	Get(id string) (*domain.Provider, error)
}

type ConfirmRequest struct {
	ProviderID string
	Date       string
	StartTime  string
}

// SlotView is a generated slot annotated with its booking status.
type SlotView struct {
	domain.TimeSlot
	Booked bool
}

type ProviderDay struct {
	Provider *domain.Provider
	Date     string
	Slots    []SlotView
	Skipped  []slot.SkippedWindow
}

type Service struct {
	catalog   ProviderCatalog
	generator *slot.Generator
	window    *calendar.Window
	ledger    *Ledger
	newID     domain.IDGenerator
	reminders *Reminders
	recorder  domain.BookingAttemptRecorder
	metrics   *metrics.BookingMetrics
}

// NewService builds the booking service. Dates outside window are rejected
// with ErrSlotUnavailable; a nil window accepts any well-formed date.
func NewService(
	catalog ProviderCatalog,
	generator *slot.Generator,
	window *calendar.Window,
	ledger *Ledger,
	newID domain.IDGenerator,
	reminders *Reminders,
	recorder domain.BookingAttemptRecorder,
	bookingMetrics *metrics.BookingMetrics,
) *Service {
	if newID == nil {
		newID = domain.NewUUID
	}
	return &Service{
		catalog:   catalog,
		generator: generator,
		window:    window,
		ledger:    ledger,
		newID:     newID,
		reminders: reminders,
		recorder:  recorder,
		metrics:   bookingMetrics,
	}
}

// Confirm reserves the requested slot. Errors, in the order they are checked:
// ErrLedgerNotHydrated, ErrProviderNotFound, a *domain.FormatError for a bad
// date, ErrSlotUnavailable for a date outside the window or a slot the
// provider does not offer, ErrDuplicateSlot.
func (s *Service) Confirm(ctx context.Context, req ConfirmRequest) (*domain.Booking, error) {
	ctx, span := tracing.StartConfirmSpan(ctx, req.ProviderID, req.Date, req.StartTime)
	defer span.End()

	booking, err := s.confirm(ctx, req)
	if booking != nil {
		tracing.RecordConfirmResult(span, booking.ID, nil)
	} else {
		tracing.RecordConfirmResult(span, "", err)
	}
	return booking, err
}

func (s *Service) confirm(ctx context.Context, req ConfirmRequest) (*domain.Booking, error) {
	if !s.ledger.Hydrated() {
		return nil, domain.ErrLedgerNotHydrated
	}

	provider, err := s.catalog.Get(req.ProviderID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDate(req.Date); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			s.recordOutcome(ctx, req, domain.BookingOutcomeRejected, "outside_window")
		}
		return nil, err
	}

	offered, ok, err := s.generator.Offers(ctx, provider, req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.recordOutcome(ctx, req, domain.BookingOutcomeRejected, "slot_unavailable")
		return nil, domain.ErrSlotUnavailable
	}

	attempt := NewAttempt(provider, offered)
	if err := attempt.Confirm(s.ledger, s.newID()); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlot) {
			slog.InfoContext(ctx, "booking rejected, slot already taken",
				slog.String("provider_id", req.ProviderID),
				slog.String("date", req.Date),
				slog.String("start_time", req.StartTime),
			)
			s.recordOutcome(ctx, req, domain.BookingOutcomeRejected, "duplicate")
		}
		return nil, err
	}

	booking := attempt.Booking()
	slog.InfoContext(ctx, "booking confirmed",
		slog.String("booking_id", booking.ID),
		slog.String("provider_id", booking.ProviderID),
		slog.String("date", booking.Date),
		slog.String("start_time", booking.StartTime),
	)
	s.recordOutcome(ctx, req, domain.BookingOutcomeConfirmed, "")
	s.registerReminder(ctx, *booking)

	return booking, nil
}

func (s *Service) registerReminder(ctx context.Context, b domain.Booking) {
	registered, err := s.reminders.Register(ctx, b)
	outcome := "skipped"
	switch {
	case err != nil:
		slog.WarnContext(ctx, "failed to register reminder",
			slog.String("booking_id", b.ID),
			slog.String("error", err.Error()),
		)
		outcome = "failed"
	case registered:
		outcome = "success"
	}
	if s.metrics != nil {
		s.metrics.RecordReminder(ctx, outcome)
	}
}

func (s *Service) recordOutcome(ctx context.Context, req ConfirmRequest, outcome domain.BookingOutcome, reason string) {
	if s.metrics != nil {
		s.metrics.RecordAttempt(ctx, string(outcome), reason)
	}
	if s.recorder == nil {
		return
	}

	record := domain.BookingAttemptRecord{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Outcome:    outcome,
		Reason:     reason,
		At:         time.Now().UTC(),
	}
	if err := s.recorder.RecordAttempt(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record booking attempt",
			slog.String("provider_id", req.ProviderID),
			slog.String("error", err.Error()),
		)
	}
}

// ProviderDay lists the provider's slots for date with their booking status.
func (s *Service) ProviderDay(ctx context.Context, providerID, date string) (*ProviderDay, error) {
	if !s.ledger.Hydrated() {
		return nil, domain.ErrLedgerNotHydrated
	}

	provider, err := s.catalog.Get(providerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDate(date); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSlotGenerationSpan(ctx, providerID, date)
	defer span.End()

	day, err := s.generator.ForDate(ctx, provider, date)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}
	tracing.RecordSlotGenerationResult(span, len(day.Slots), len(day.Skipped))
	if s.metrics != nil {
		s.metrics.RecordSkippedWindows(ctx, providerID, len(day.Skipped))
	}

	views := make([]SlotView, 0, len(day.Slots))
	for _, ts := range day.Slots {
		views = append(views, SlotView{
			TimeSlot: ts,
			Booked:   s.ledger.IsBooked(ts.Key()),
		})
	}

	return &ProviderDay{
		Provider: provider,
		Date:     date,
		Slots:    views,
		Skipped:  day.Skipped,
	}, nil
}

// checkDate rejects malformed dates and, when a window is set, dates that are
// not among its bookable days.
func (s *Service) checkDate(date string) error {
	if _, err := domain.ParseDate(date, time.UTC); err != nil {
		return err
	}
	if s.window != nil && !s.window.Contains(date) {
		return fmt.Errorf("%w: %s is outside the bookable window", domain.ErrSlotUnavailable, date)
	}
	return nil
}

func (s *Service) Bookings() []domain.Booking {
	return s.ledger.Snapshot()
}

func (s *Service) BookedCount(providerID string) int {
	return s.ledger.CountForProvider(providerID)
}

func (s *Service) Ready() bool {
	return s.ledger.Hydrated()
}
