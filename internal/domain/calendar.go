package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every date field.
const DateLayout = "2006-01-02"

type CalendarDay struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

// ParseDate parses an ISO date as midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, NewFormatError(date, fmt.Errorf("%w: %v", ErrInvalidDate, err))
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
