package stub

// AvailabilityRecord mirrors one entry of the provider feed.
type AvailabilityRecord struct {
	Name           string `json:"name"`
	Timezone       string `json:"timezone"`
	DayOfWeek      string `json:"day_of_week"`
	AvailableAt    string `json:"available_at"`
	AvailableUntil string `json:"available_until"`
}

type SeedRequest struct {
	Records   []AvailabilityRecord `json:"records,omitempty"`
	Generated *GenerateSpec        `json:"generate,omitempty"`
}

// GenerateSpec describes synthetic providers that share one weekly schedule.
type GenerateSpec struct {
	ProviderCount  int      `json:"provider_count"`
	Timezone       string   `json:"timezone"`
	Days           []string `json:"days"`
	AvailableAt    string   `json:"available_at"`
	AvailableUntil string   `json:"available_until"`
}

type FailureRequest struct {
	StatusCode int `json:"status_code"`
}
