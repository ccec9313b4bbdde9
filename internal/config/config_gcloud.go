//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Validate requires the full Cloud Tasks queue location, since reminders for
// confirmed bookings are enqueued there instead of the Primind Tasks service.
func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, ErrReminderProjectMissing)
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, ErrReminderLocationMissing)
	}
	if c.GCloudQueueID == "" {
		errs = append(errs, ErrReminderQueueMissing)
	}
	if c.GCloudTargetURL == "" {
		errs = append(errs, ErrReminderTargetMissing)
	}
	if c.MaxRetries <= 0 {
		errs = append(errs, ErrInvalidTaskQueueRetries)
	}

	if len(errs) > 0 {
		return fmt.Errorf("booking reminder queue configuration: %w", errors.Join(errs...))
	}

	return nil
}
