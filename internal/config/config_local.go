//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; reminders are then disabled.
func (c *TaskQueueConfig) Validate() error {
	if c.MaxRetries <= 0 {
		return ErrInvalidTaskQueueRetries
	}
	return nil
}
