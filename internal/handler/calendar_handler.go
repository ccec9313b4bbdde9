package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-appointment-booking/internal/service/calendar"
)

type CalendarHandler struct {
	window *calendar.Window
}

func NewCalendarHandler(window *calendar.Window) *CalendarHandler {
	return &CalendarHandler{window: window}
}

func (h *CalendarHandler) HandleDays(c *gin.Context) {
	respondJSON(c, http.StatusOK, daysResponse{Days: h.window.NextDays()})
}
