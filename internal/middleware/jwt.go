package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// ProfileKey is the echo.Context key under which SessionAuth stores the
// authenticated profile id.
const ProfileKey = "profile_id"

// SessionAuth returns an Echo middleware that validates a Bearer profile
// token and injects its profile id into the request context.  The provided
// secret must match the one used when issuing tokens.  Handlers read the id
// with ProfileID(c).
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			profileID, err := utils.ParseProfileToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(ProfileKey, profileID)
			return next(c)
		}
	}
}
