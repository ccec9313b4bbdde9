package slot

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// Duration is the fixed length of every bookable slot.
const Duration = 30 * time.Minute

const clockLayout = "15:04"

var twelveHourClock = regexp.MustCompile(`^(\d+):(\d+)(AM|PM)$`)

// Clock is a wall-clock time of day on a 24-hour clock.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// ParseClock converts "9:00AM"-style text into a 24-hour Clock.
// Surrounding whitespace and letter case are ignored.
//
// Any digits match the h:mm(AM|PM) pattern, but an hour above 12 or a minute
// above 59 is still rejected, so "13:00PM" and "9:75AM" are format errors
// rather than wrapping into the next hour or day.
func ParseClock(value string) (Clock, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(value))

	match := twelveHourClock.FindStringSubmatch(cleaned)
	if match == nil {
		return Clock{}, domain.NewFormatError(value, domain.ErrInvalidTimeFormat)
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour > 12 {
		return Clock{}, domain.NewFormatError(value, domain.ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return Clock{}, domain.NewFormatError(value, domain.ErrInvalidTimeFormat)
	}

	switch {
	case match[3] == "PM" && hour != 12:
		hour += 12
	case match[3] == "AM" && hour == 12:
		hour = 0
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// Generator expands availability windows into concrete slots. It holds no
// state; identical inputs always produce identical output.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate tiles [window start, window end) on date with Duration-long slots.
// A trailing remainder shorter than Duration yields no slot, and an empty or
// inverted window yields none at all.
func (g *Generator) Generate(providerID, date string, window domain.AvailabilityWindow) ([]domain.TimeSlot, error) {
	day, err := domain.ParseDate(date, time.UTC)
	if err != nil {
		return nil, err
	}

	start, err := ParseClock(window.AvailableAt)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(window.AvailableUntil)
	if err != nil {
		return nil, err
	}

	cursor := day.Add(time.Duration(start.minutes()) * time.Minute)
	limit := day.Add(time.Duration(end.minutes()) * time.Minute)

	slots := make([]domain.TimeSlot, 0)
	for next := cursor.Add(Duration); !next.After(limit); next = cursor.Add(Duration) {
		slots = append(slots, domain.TimeSlot{
			ProviderID: providerID,
			Date:       date,
			StartTime:  cursor.Format(clockLayout),
			EndTime:    next.Format(clockLayout),
		})
		cursor = next
	}

	return slots, nil
}

type SkippedWindow struct {
	Window domain.AvailabilityWindow
	Err    error
}

type DaySlots struct {
	Slots   []domain.TimeSlot
	Skipped []SkippedWindow
}

// ForDate generates the slots of every provider window that applies to
// date's weekday, concatenated in window order. Overlapping windows are not
// merged. A window with malformed times is skipped and reported without
// affecting the others.
func (g *Generator) ForDate(ctx context.Context, provider *domain.Provider, date string) (*DaySlots, error) {
	day, err := domain.ParseDate(date, time.UTC)
	if err != nil {
		return nil, err
	}

	result := &DaySlots{Slots: make([]domain.TimeSlot, 0)}
	for _, window := range provider.WindowsFor(day) {
		slots, err := g.Generate(provider.ID, date, window)
		if err != nil {
			slog.WarnContext(ctx, "skipping availability window",
				slog.String("provider_id", provider.ID),
				slog.String("date", date),
				slog.String("available_at", window.AvailableAt),
				slog.String("available_until", window.AvailableUntil),
				slog.String("error", err.Error()),
			)
			result.Skipped = append(result.Skipped, SkippedWindow{Window: window, Err: err})
			continue
		}
		result.Slots = append(result.Slots, slots...)
	}

	return result, nil
}

// Offers reports whether the provider's generated slots for date contain
// one starting at startTime, and returns it.
func (g *Generator) Offers(ctx context.Context, provider *domain.Provider, date, startTime string) (domain.TimeSlot, bool, error) {
	day, err := g.ForDate(ctx, provider, date)
	if err != nil {
		return domain.TimeSlot{}, false, fmt.Errorf("generate slots: %w", err)
	}
	for _, s := range day.Slots {
		if s.StartTime == startTime {
			return s, true, nil
		}
	}
	return domain.TimeSlot{}, false, nil
}
