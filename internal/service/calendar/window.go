package calendar

import (
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// DefaultDays is the number of bookable days offered when none is configured.
const DefaultDays = 7

const labelLayout = "Mon 2"

// Clock returns the current instant.
type Clock func() time.Time

// Window produces the rolling list of bookable calendar days.
type Window struct {
	days     int
	now      Clock
	location *time.Location
}

func NewWindow(days int, now Clock, location *time.Location) *Window {
	if days <= 0 {
		days = DefaultDays
	}
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &Window{
		days:     days,
		now:      now,
		location: location,
	}
}

// NextDays returns consecutive calendar days starting with today, ascending.
// Today is the clock's date in the window's location.
func (w *Window) NextDays() []domain.CalendarDay {
	now := w.now().In(w.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.location)

	days := make([]domain.CalendarDay, 0, w.days)
	for i := 0; i < w.days; i++ {
		day := today.AddDate(0, 0, i)
		days = append(days, domain.CalendarDay{
			Date:  domain.FormatDate(day),
			Label: day.Format(labelLayout),
		})
	}
	return days
}

// Contains reports whether date is one of the days NextDays would return.
func (w *Window) Contains(date string) bool {
	for _, day := range w.NextDays() {
		if day.Date == date {
			return true
		}
	}
	return false
}

func (w *Window) Location() *time.Location {
	return w.location
}
