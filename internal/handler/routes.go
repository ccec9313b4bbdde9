package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the booking API under r.
func RegisterRoutes(r gin.IRouter, providers *ProviderHandler, calendar *CalendarHandler, bookings *BookingHandler) {
	r.GET("/providers", providers.HandleList)
	r.POST("/providers/refresh", providers.HandleRefresh)
	r.GET("/providers/:id", providers.HandleGet)
	r.GET("/providers/:id/slots", providers.HandleSlots)
	r.GET("/days", calendar.HandleDays)
	r.POST("/bookings", bookings.HandleCreate)
	r.GET("/bookings", bookings.HandleList)
}
