package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"

	"github.com/KasumiMercury/primind-appointment-booking/internal/service/booking"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	registerValidations()
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
	Date       string `json:"date" binding:"required,iso_date"`
	StartTime  string `json:"start_time" binding:"required,clock24"`
}

func (h *BookingHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read request body", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "read_error", "failed to read request body")
		return
	}

	var req createBookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		slog.WarnContext(ctx, "request unmarshal failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", "request body must be a JSON object")
		return
	}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		slog.WarnContext(ctx, "request validation failed",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	created, err := h.bookings.Confirm(ctx, booking.ConfirmRequest{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		StartTime:  req.StartTime,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, created)
}

func (h *BookingHandler) HandleList(c *gin.Context) {
	respondJSON(c, http.StatusOK, bookingListResponse{Bookings: h.bookings.Bookings()})
}
