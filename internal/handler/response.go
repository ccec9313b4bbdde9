package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/KasumiMercury/primind-appointment-booking/internal/domain"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/provider"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type windowResponse struct {
	DayOfWeek      string `json:"day_of_week"`
	AvailableAt    string `json:"available_at"`
	AvailableUntil string `json:"available_until"`
}

type providerResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Timezone     string           `json:"timezone"`
	Availability []windowResponse `json:"availability"`
	BookedCount  int              `json:"booked_count"`
}

type providerListResponse struct {
	Providers []providerResponse `json:"providers"`
	FetchedAt time.Time          `json:"fetched_at"`
}

type slotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Booked    bool   `json:"booked"`
}

type skippedWindowResponse struct {
	windowResponse
	Reason string `json:"reason"`
}

type providerSlotsResponse struct {
	ProviderID     string                  `json:"provider_id"`
	ProviderName   string                  `json:"provider_name"`
	Date           string                  `json:"date"`
	Slots          []slotResponse          `json:"slots"`
	SkippedWindows []skippedWindowResponse `json:"skipped_windows"`
}

type daysResponse struct {
	Days []domain.CalendarDay `json:"days"`
}

type bookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
}

func toWindowResponse(w domain.AvailabilityWindow) windowResponse {
	return windowResponse{
		DayOfWeek:      w.DayOfWeek.String(),
		AvailableAt:    w.AvailableAt,
		AvailableUntil: w.AvailableUntil,
	}
}

func toProviderResponse(p *domain.Provider, bookedCount int) providerResponse {
	windows := make([]windowResponse, 0, len(p.Availability))
	for _, w := range p.Availability {
		windows = append(windows, toWindowResponse(w))
	}
	return providerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Timezone:     p.Timezone,
		Availability: windows,
		BookedCount:  bookedCount,
	}
}

func toProviderSlotsResponse(day *booking.ProviderDay) providerSlotsResponse {
	slots := make([]slotResponse, 0, len(day.Slots))
	for _, s := range day.Slots {
		slots = append(slots, slotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Booked:    s.Booked,
		})
	}

	skipped := make([]skippedWindowResponse, 0, len(day.Skipped))
	for _, s := range day.Skipped {
		skipped = append(skipped, skippedWindowResponse{
			windowResponse: toWindowResponse(s.Window),
			Reason:         s.Err.Error(),
		})
	}

	return providerSlotsResponse{
		ProviderID:     day.Provider.ID,
		ProviderName:   day.Provider.Name,
		Date:           day.Date,
		Slots:          slots,
		SkippedWindows: skipped,
	}
}

func respondJSON(c *gin.Context, status int, body any) {
	respBytes, err := json.Marshal(body)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to marshal response", slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(status, "application/json", respBytes)
}

func respondError(c *gin.Context, status int, errType, message string) {
	respondJSON(c, status, &ErrorResponse{
		Error:   errType,
		Message: message,
	})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var formatErr *domain.FormatError

	switch {
	case errors.Is(err, domain.ErrLedgerNotHydrated):
		respondError(c, http.StatusServiceUnavailable, "not_ready", err.Error())
	case errors.Is(err, domain.ErrProviderNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrSlotUnavailable):
		respondError(c, http.StatusUnprocessableEntity, "slot_unavailable", err.Error())
	case errors.Is(err, domain.ErrDuplicateSlot):
		respondError(c, http.StatusConflict, "duplicate_booking", err.Error())
	case errors.Is(err, provider.ErrRefreshThrottled):
		respondError(c, http.StatusTooManyRequests, "throttled", err.Error())
	case errors.Is(err, domain.ErrProviderFeedFailed):
		respondError(c, http.StatusBadGateway, "feed_error", err.Error())
	case errors.As(err, &formatErr):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "unhandled service error",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
