package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require a session: the
// health check, session creation and the movie catalog.
func RegisterRoutes(e *echo.Echo, health *handler.HealthHandler, sessions *handler.SessionHandler, b *handler.BookingHandler) {
	// Load balancers and monitoring poll this endpoint.
	e.GET("/healthz", health.Health)

	// A new session is a new, empty browser profile.
	e.POST("/v1/sessions", sessions.Create)

	// The movie selector is the same for every profile.
	e.GET("/v1/movies", b.ListMovies)
}
