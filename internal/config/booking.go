package config

import (
	"os"
	"strconv"
	"time"
)

const (
	bookingTimezoneEnv       = "BOOKING_TIMEZONE"
	bookingDateWindowDaysEnv = "BOOKING_DATE_WINDOW_DAYS"
	reminderLeadMinutesEnv   = "REMINDER_LEAD_MINUTES"

	defaultDateWindowDays      = 7
	defaultReminderLeadMinutes = 60
)

type BookingConfig struct {
	// Location decides which calendar date "today" is.
	Location       *time.Location
	DateWindowDays int
	ReminderLead   time.Duration
}

func LoadBookingConfig() (*BookingConfig, error) {
	location := time.Local
	if tz := os.Getenv(bookingTimezoneEnv); tz != "" {
		loaded, err := time.LoadLocation(tz)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
		location = loaded
	}

	days, err := positiveIntEnv(bookingDateWindowDaysEnv, defaultDateWindowDays, ErrInvalidDateWindowDays)
	if err != nil {
		return nil, err
	}

	lead := defaultReminderLeadMinutes
	if raw := os.Getenv(reminderLeadMinutesEnv); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidReminderLead
		}
		lead = parsed
	}

	return &BookingConfig{
		Location:       location,
		DateWindowDays: days,
		ReminderLead:   time.Duration(lead) * time.Minute,
	}, nil
}
