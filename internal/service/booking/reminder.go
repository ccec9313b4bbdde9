package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/infra/taskqueue"
)

// Reminders registers a reminder task ahead of each confirmed appointment.
type Reminders struct {
	queue    taskqueue.TaskQueue
	lead     time.Duration
	location *time.Location
	now      func() time.Time
}

func NewReminders(queue taskqueue.TaskQueue, lead time.Duration, location *time.Location, now func() time.Time) *Reminders {
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Reminders{
		queue:    queue,
		lead:     lead,
		location: location,
		now:      now,
	}
}

// ScheduleAt is the instant the reminder for b fires: lead before the
// appointment's wall-clock start in the booking location.
func (r *Reminders) ScheduleAt(b domain.Booking) (time.Time, error) {
	day, err := domain.ParseDate(b.Date, r.location)
	if err != nil {
		return time.Time{}, err
	}
	start, err := time.Parse("15:04", b.StartTime)
	if err != nil {
		return time.Time{}, domain.NewFormatError(b.StartTime, domain.ErrInvalidTimeFormat)
	}

	appointment := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, r.location)
	return appointment.Add(-r.lead), nil
}

// Register returns (false, nil) when the reminder time has already passed.
func (r *Reminders) Register(ctx context.Context, b domain.Booking) (bool, error) {
	if r == nil || r.queue == nil {
		slog.WarnContext(ctx, "task queue not configured, skipping reminder registration",
			slog.String("booking_id", b.ID),
		)
		return false, nil
	}

	scheduleAt, err := r.ScheduleAt(b)
	if err != nil {
		return false, fmt.Errorf("compute reminder time: %w", err)
	}
	if !scheduleAt.After(r.now()) {
		slog.DebugContext(ctx, "reminder time already passed, skipping",
			slog.String("booking_id", b.ID),
			slog.Time("schedule_at", scheduleAt),
		)
		return false, nil
	}

	resp, err := r.queue.RegisterReminder(ctx, &taskqueue.ReminderTask{
		ScheduleAt:   scheduleAt,
		BookingID:    b.ID,
		ProviderID:   b.ProviderID,
		ProviderName: b.ProviderName,
		Date:         b.Date,
		StartTime:    b.StartTime,
	})
	if err != nil {
		return false, err
	}

	slog.DebugContext(ctx, "reminder registered",
		slog.String("booking_id", b.ID),
		slog.String("task_name", resp.Name),
		slog.Time("schedule_time", resp.ScheduleTime),
		slog.Duration("lead", r.lead),
	)
	return true, nil
}
