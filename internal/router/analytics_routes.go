package router

// Analytics routes keep the paths the dashboard widget already calls.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
)

// RegisterAnalytics registers the QR scan recorder and the aggregated
// marketing data endpoint.  cache wraps only the aggregation, which is a
// pure read.
func RegisterAnalytics(e *echo.Echo, h *handler.AnalyticsHandler, cache echo.MiddlewareFunc) {
	e.GET("/qr/scan", h.RecordScan)
	e.GET("/accounts/get_qr_marketing_data/", h.MarketingData, cache)
}
