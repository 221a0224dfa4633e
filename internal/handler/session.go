package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// SessionHandler issues profile tokens.  A profile is the server-side
// stand-in for one browser profile: it owns one seat booking state.
type SessionHandler struct {
	Secret string
	TTL    time.Duration
}

// NewSessionHandler constructs a SessionHandler and panics on an empty
// secret.
func NewSessionHandler(secret string, ttl time.Duration) *SessionHandler {
	if secret == "" {
		panic("empty secret passed to NewSessionHandler")
	}
	return &SessionHandler{Secret: secret, TTL: ttl}
}

// Create handles POST /v1/sessions.  It mints a new profile id and returns
// a bearer token for it; the booking state of the profile starts empty.
func (h *SessionHandler) Create(c echo.Context) error {
	tok, err := utils.NewProfileToken(h.Secret, h.TTL)
	if err != nil {
		log.Printf("session: sign token: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"token":      tok.Token,
		"token_type": "Bearer",
		"profile_id": tok.ProfileID,
		"expires_at": tok.Exp.Format(time.RFC3339),
	})
}
