package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
)

// RegisterBooking registers the seat booking commands under /v1/booking.
// Every route requires a profile token; limiter runs after authentication
// so buckets are keyed by profile.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, sessionSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/booking",
		middleware.SessionAuth(sessionSecret),
		limiter,
	)
	g.GET("", h.State)
	g.POST("/seats/:ordinal/toggle", h.ToggleSeat)
	g.PUT("/movie", h.ChangeMovie)
	g.POST("/confirm", h.ConfirmBooking)
	g.POST("/reset", h.Reset)
}
