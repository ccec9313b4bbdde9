package domain

import "time"

type Booking struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewBooking(id string, provider *Provider, slot TimeSlot) Booking {
	return Booking{
		ID:           id,
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		Date:         slot.Date,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		CreatedAt:    time.Now().UTC(),
	}
}

func (b Booking) Key() SlotKey {
	return SlotKey{
		ProviderID: b.ProviderID,
		Date:       b.Date,
		StartTime:  b.StartTime,
	}
}
