package repository

import (
	"time"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
)

type bookingRecord struct {
	ID           string    `json:"id"`
	ProviderID   string    `json:"provider_id"`
	ProviderName string    `json:"provider_name"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRecord(b domain.Booking) bookingRecord {
	return bookingRecord{
		ID:           b.ID,
		ProviderID:   b.ProviderID,
		ProviderName: b.ProviderName,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		CreatedAt:    b.CreatedAt,
	}
}

func (r bookingRecord) toDomain() domain.Booking {
	return domain.Booking{
		ID:           r.ID,
		ProviderID:   r.ProviderID,
		ProviderName: r.ProviderName,
		Date:         r.Date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		CreatedAt:    r.CreatedAt,
	}
}
