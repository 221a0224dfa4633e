package middleware

import "github.com/labstack/echo/v4"

// ProfileID returns the profile id stored by SessionAuth, or "" when the
// request is not authenticated.
func ProfileID(c echo.Context) string {
	if v, ok := c.Get(ProfileKey).(string); ok {
		return v
	}
	return ""
}

// rateSubject identifies the caller for rate limiting: the profile when
// authenticated, otherwise "anon".
func rateSubject(c echo.Context) string {
	if id := ProfileID(c); id != "" {
		return id
	}
	return "anon"
}
