package handler // declare the package name; contains HTTP handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is implemented by *sql.DB; wrap other clients with PingFunc.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler reports process liveness and the state of optional
// backends.  A nil dependency is reported as "disabled".
type HealthHandler struct {
	Deps map[string]Pinger
}

// Health handles GET /healthz.  It answers 200 with "ok" as long as the
// process serves requests, so load balancers keep working while an optional
// backend is down.  ?verbose=1 returns each dependency's status as JSON.
func (h *HealthHandler) Health(c echo.Context) error {
	if c.QueryParam("verbose") == "" {
		return c.String(http.StatusOK, "ok")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
	defer cancel()
	deps := make(map[string]string, len(h.Deps))
	for name, p := range h.Deps {
		switch {
		case p == nil:
			deps[name] = "disabled"
		case p.PingContext(ctx) != nil:
			deps[name] = "down"
		default:
			deps[name] = "up"
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "deps": deps})
}
