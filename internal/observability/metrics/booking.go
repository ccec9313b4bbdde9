package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	bookingMeterName = "booking.service"
)

type BookingMetrics struct {
	attempts        metric.Int64Counter
	persistWrites   metric.Int64Counter
	persistDuration metric.Float64Histogram
	feedFetches     metric.Int64Counter
	skippedWindows  metric.Int64Counter
	reminders       metric.Int64Counter
}

func NewBookingMetrics() (*BookingMetrics, error) {
	meter := otel.Meter(bookingMeterName)

	attempts, err := meter.Int64Counter(
		"booking_attempts_total",
		metric.WithDescription("Total number of booking confirmation attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	persistWrites, err := meter.Int64Counter(
		"booking_persist_writes_total",
		metric.WithDescription("Total number of ledger writes to the booking store"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	persistDuration, err := meter.Float64Histogram(
		"booking_persist_duration_seconds",
		metric.WithDescription("Time spent writing the ledger to the booking store"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	feedFetches, err := meter.Int64Counter(
		"provider_feed_fetches_total",
		metric.WithDescription("Total number of provider feed fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	skippedWindows, err := meter.Int64Counter(
		"slot_windows_skipped_total",
		metric.WithDescription("Availability windows skipped because of malformed times"),
		metric.WithUnit("{window}"),
	)
	if err != nil {
		return nil, err
	}

	reminders, err := meter.Int64Counter(
		"booking_reminders_total",
		metric.WithDescription("Reminder registrations for confirmed bookings"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	return &BookingMetrics{
		attempts:        attempts,
		persistWrites:   persistWrites,
		persistDuration: persistDuration,
		feedFetches:     feedFetches,
		skippedWindows:  skippedWindows,
		reminders:       reminders,
	}, nil
}

func (m *BookingMetrics) RecordAttempt(ctx context.Context, outcome, reason string) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("outcome", outcome),
		attribute.String("reason", reason),
	})
	m.attempts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *BookingMetrics) RecordPersist(ctx context.Context, outcome string, duration time.Duration) {
	m.persistWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.persistDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *BookingMetrics) RecordFeedFetch(ctx context.Context, outcome string) {
	m.feedFetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *BookingMetrics) RecordSkippedWindows(ctx context.Context, providerID string, count int) {
	if count == 0 {
		return
	}
	m.skippedWindows.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("provider_id", providerID),
	))
}

func (m *BookingMetrics) RecordReminder(ctx context.Context, outcome string) {
	m.reminders.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
