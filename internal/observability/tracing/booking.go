package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const bookingTracerName = "github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"

func BookingTracer() trace.Tracer {
	return otel.Tracer(bookingTracerName)
}

func StartConfirmSpan(ctx context.Context, providerID, date, startTime string) (context.Context, trace.Span) {
	return BookingTracer().Start(ctx, "booking.confirm",
		trace.WithAttributes(
			attribute.String("booking.provider_id", providerID),
			attribute.String("booking.date", date),
			attribute.String("booking.start_time", startTime),
		),
	)
}

func StartSlotGenerationSpan(ctx context.Context, providerID, date string) (context.Context, trace.Span) {
	return BookingTracer().Start(ctx, "booking.slot_generation",
		trace.WithAttributes(
			attribute.String("slot.provider_id", providerID),
			attribute.String("slot.date", date),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return BookingTracer().Start(ctx, "booking.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartStoreOperationSpan(ctx context.Context, system, operation string) (context.Context, trace.Span) {
	return BookingTracer().Start(ctx, "booking.store."+operation,
		trace.WithAttributes(
			attribute.String("db.system", system),
			attribute.String("db.operation", operation),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordConfirmResult(span trace.Span, bookingID string, err error) {
	if bookingID != "" {
		span.SetAttributes(attribute.String("booking.id", bookingID))
	}
	RecordResult(span, err)
}

func RecordSlotGenerationResult(span trace.Span, slotCount, skippedCount int) {
	span.SetAttributes(
		attribute.Int("slot.count", slotCount),
		attribute.Int("slot.skipped_windows", skippedCount),
	)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
