package domain

import (
	"strings"
	"time"
)

// RawAvailability is one flat record of the provider feed.
type RawAvailability struct {
	Name           string `json:"name"`
	Timezone       string `json:"timezone"`
	DayOfWeek      string `json:"day_of_week"`
	AvailableAt    string `json:"available_at"`
	AvailableUntil string `json:"available_until"`
}

// AvailabilityWindow is a recurring weekly window. AvailableAt and
// AvailableUntil keep the feed's 12-hour clock text; they are parsed
// when slots are generated.
type AvailabilityWindow struct {
	DayOfWeek      time.Weekday `json:"day_of_week"`
	AvailableAt    string       `json:"available_at"`
	AvailableUntil string       `json:"available_until"`
}

func (w AvailabilityWindow) AppliesTo(day time.Time) bool {
	return day.Weekday() == w.DayOfWeek
}

// ParseWeekday accepts full and abbreviated English day names, case-insensitively.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tues", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thur", "thurs", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	case "sun", "sunday":
		return time.Sunday, true
	}
	return time.Sunday, false
}
