package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"
	"github.com/KasumiMercury/primind-appointment-booking/internal/service/provider"
)

type ProviderHandler struct {
	catalog  *provider.Catalog
	bookings *booking.Service
}

func NewProviderHandler(catalog *provider.Catalog, bookings *booking.Service) *ProviderHandler {
	registerValidations()
	return &ProviderHandler{
		catalog:  catalog,
		bookings: bookings,
	}
}

type slotsQuery struct {
	Date string `form:"date" binding:"required,iso_date"`
}

// HandleList serves the provider list. It answers 503 until the first fetch
// finishes and 502 while the latest fetch has failed.
func (h *ProviderHandler) HandleList(c *gin.Context) {
	state := h.catalog.State()

	switch {
	case state.Err != nil:
		respondServiceError(c, state.Err)
		return
	case state.Loading:
		respondError(c, http.StatusServiceUnavailable, "loading", "provider list is loading")
		return
	}

	h.respondList(c, state)
}

// HandleRefresh re-fetches the feed and returns the new list.
func (h *ProviderHandler) HandleRefresh(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.catalog.Refresh(ctx); err != nil {
		slog.WarnContext(ctx, "provider refresh failed",
			slog.String("error", err.Error()),
		)
		respondServiceError(c, err)
		return
	}

	h.respondList(c, h.catalog.State())
}

func (h *ProviderHandler) respondList(c *gin.Context, state provider.State) {
	resp := providerListResponse{
		Providers: make([]providerResponse, 0, len(state.Providers)),
		FetchedAt: state.FetchedAt,
	}
	for i := range state.Providers {
		p := &state.Providers[i]
		resp.Providers = append(resp.Providers, toProviderResponse(p, h.bookings.BookedCount(p.ID)))
	}

	respondJSON(c, http.StatusOK, resp)
}

func (h *ProviderHandler) HandleGet(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProviderResponse(p, h.bookings.BookedCount(p.ID)))
}

// HandleSlots lists a provider's slots for one date with booked flags.
func (h *ProviderHandler) HandleSlots(c *gin.Context) {
	ctx := c.Request.Context()

	var query slotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		slog.WarnContext(ctx, "slot query validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	day, err := h.bookings.ProviderDay(ctx, c.Param("id"), query.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toProviderSlotsResponse(day))
}
