package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue schedules a reminder delivery for a confirmed booking.
type TaskQueue interface {
	RegisterReminder(ctx context.Context, task *ReminderTask) (*TaskResponse, error)
}
