package domain

// TimeSlot is a bookable interval derived from an AvailabilityWindow.
// Slots are computed on demand and never stored.
type TimeSlot struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (s TimeSlot) Key() SlotKey {
	return SlotKey{
		ProviderID: s.ProviderID,
		Date:       s.Date,
		StartTime:  s.StartTime,
	}
}

// SlotKey identifies a bookable slot. At most one booking may exist per key.
type SlotKey struct {
	ProviderID string
	Date       string
	StartTime  string
}

func (k SlotKey) String() string {
	return k.ProviderID + "|" + k.Date + "|" + k.StartTime
}
