package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
)

var defaultDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

type FeedStorage struct {
	mu       sync.RWMutex
	records  map[string][]AvailabilityRecord // runID -> records
	failures map[string]int                  // runID -> forced status code
}

func NewFeedStorage() *FeedStorage {
	return &FeedStorage{
		records:  make(map[string][]AvailabilityRecord),
		failures: make(map[string]int),
	}
}

func (s *FeedStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, runID)
	delete(s.failures, runID)
}

func (s *FeedStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string][]AvailabilityRecord)
	s.failures = make(map[string]int)
}

func (s *FeedStorage) AddRecords(runID string, records []AvailabilityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[runID] = append(s.records[runID], records...)
}

// Records returns the feed for runID, or the forced failure status when one
// is set.
func (s *FeedStorage) Records(runID string) ([]AvailabilityRecord, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status, ok := s.failures[runID]; ok {
		return nil, status
	}

	records := slices.Clone(s.records[runID])
	if records == nil {
		records = []AvailabilityRecord{}
	}
	return records, 0
}

// SetFailure forces the feed for runID to answer with status. Zero clears it.
func (s *FeedStorage) SetFailure(runID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == 0 {
		delete(s.failures, runID)
		return
	}
	s.failures[runID] = status
}

// Generate expands gen into one record per provider and day.
func Generate(runID string, gen GenerateSpec) []AvailabilityRecord {
	days := gen.Days
	if len(days) == 0 {
		days = defaultDays
	}
	timezone := gen.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	availableAt := gen.AvailableAt
	if availableAt == "" {
		availableAt = "9:00AM"
	}
	availableUntil := gen.AvailableUntil
	if availableUntil == "" {
		availableUntil = "5:00PM"
	}

	records := make([]AvailabilityRecord, 0, gen.ProviderCount*len(days))
	for i := 0; i < gen.ProviderCount; i++ {
		name := generateProviderName(runID, i)
		for _, day := range days {
			records = append(records, AvailabilityRecord{
				Name:           name,
				Timezone:       timezone,
				DayOfWeek:      day,
				AvailableAt:    availableAt,
				AvailableUntil: availableUntil,
			})
		}
	}
	return records
}

func generateProviderName(runID string, index int) string {
	input := fmt.Sprintf("%s-%d", runID, index)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("Dr. Load %04d %s", index, hex.EncodeToString(hash[:4]))
}
