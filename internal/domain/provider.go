package domain

import "time"

type Provider struct {
	ID           string
	Name         string
	Timezone     string
	Availability []AvailabilityWindow
}

// WindowsFor returns the windows that apply to day's weekday, in feed order.
func (p *Provider) WindowsFor(day time.Time) []AvailabilityWindow {
	var windows []AvailabilityWindow
	for _, w := range p.Availability {
		if w.AppliesTo(day) {
			windows = append(windows, w)
		}
	}
	return windows
}
