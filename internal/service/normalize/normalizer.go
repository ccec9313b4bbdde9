package normalize

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

// Normalizer groups flat feed records into providers keyed by name.
// IDs are assigned once per distinct name and reused by later calls.
type Normalizer struct {
	newID func(name string) string

	mu    sync.Mutex
	known map[string]string
}

// NewNormalizer derives IDs from provider names with domain.ProviderIDFor
// when newID is nil, which keeps IDs stable across restarts. A non-nil newID
// is called once per distinct name.
func NewNormalizer(newID domain.IDGenerator) *Normalizer {
	idFor := domain.ProviderIDFor
	if newID != nil {
		idFor = func(string) string { return newID() }
	}
	return &Normalizer{
		newID: idFor,
		known: make(map[string]string),
	}
}

// Normalize never fails on malformed time strings; they are trimmed and
// passed through for the slot generator to validate.
func (n *Normalizer) Normalize(raw []domain.RawAvailability) []domain.Provider {
	n.mu.Lock()
	defer n.mu.Unlock()

	providers := make([]domain.Provider, 0)
	index := make(map[string]int)

	for _, record := range raw {
		i, ok := index[record.Name]
		if !ok {
			providers = append(providers, domain.Provider{
				ID:           n.idFor(record.Name),
				Name:         record.Name,
				Timezone:     record.Timezone,
				Availability: make([]domain.AvailabilityWindow, 0),
			})
			i = len(providers) - 1
			index[record.Name] = i
		}

		day, ok := domain.ParseWeekday(record.DayOfWeek)
		if !ok {
			slog.Warn("skipping availability with unknown day of week",
				slog.String("provider", record.Name),
				slog.String("day_of_week", record.DayOfWeek),
			)
			continue
		}

		providers[i].Availability = append(providers[i].Availability, domain.AvailabilityWindow{
			DayOfWeek:      day,
			AvailableAt:    strings.TrimSpace(record.AvailableAt),
			AvailableUntil: strings.TrimSpace(record.AvailableUntil),
		})
	}

	return providers
}

func (n *Normalizer) idFor(name string) string {
	if id, ok := n.known[name]; ok {
		return id
	}
	id := n.newID(name)
	n.known[name] = id
	return id
}
