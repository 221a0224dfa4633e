package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
)

// ScanRepository is the persistence used by AnalyticsHandler.  It is
// satisfied by *repository.QRScanRepo.
type ScanRepository interface {
	Record(ctx context.Context, s model.QRMarketingScan) (uint64, error)
	CountByIdentifier(ctx context.Context, f repository.ScanFilter) ([]model.ScanCount, error)
}

// AnalyticsHandler serves the QR marketing analytics widget: it records
// scans and aggregates them per source identifier.
type AnalyticsHandler struct {
	Repo        ScanRepository
	RedirectURL string
}

// NewAnalyticsHandler constructs an AnalyticsHandler and panics if repo is
// nil.
func NewAnalyticsHandler(repo ScanRepository, redirectURL string) *AnalyticsHandler {
	if repo == nil {
		panic("nil repository passed to NewAnalyticsHandler")
	}
	if redirectURL == "" {
		redirectURL = "/"
	}
	return &AnalyticsHandler{Repo: repo, RedirectURL: redirectURL}
}

// RecordScan handles GET /qr/scan?qr=<identifier>.  The scan is stored with
// the client IP and user agent and the visitor is redirected.  A storage
// failure is logged and does not block the redirect.
func (h *AnalyticsHandler) RecordScan(c echo.Context) error {
	identifier := strings.TrimSpace(c.QueryParam("qr"))
	if identifier == "" {
		identifier = "unknown"
	}
	if len(identifier) > 100 {
		identifier = identifier[:100]
	}
	scan := model.QRMarketingScan{
		Identifier: identifier,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	}
	if city := strings.TrimSpace(c.QueryParam("city")); city != "" {
		scan.City = &city
	}
	if _, err := h.Repo.Record(c.Request().Context(), scan); err != nil {
		log.Printf("analytics: record scan %q: %v", identifier, err)
	}
	return c.Redirect(http.StatusFound, h.RedirectURL)
}

// MarketingData handles GET /accounts/get_qr_marketing_data/ with optional
// start_date, end_date (YYYY-MM-DD, inclusive) and city filters.  It
// returns a JSON array of {identifier, count}.
func (h *AnalyticsHandler) MarketingData(c echo.Context) error {
	var f repository.ScanFilter
	var err error
	if f.StartDate, err = parseDate(c.QueryParam("start_date")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, want YYYY-MM-DD"})
	}
	if f.EndDate, err = parseDate(c.QueryParam("end_date")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, want YYYY-MM-DD"})
	}
	f.City = strings.TrimSpace(c.QueryParam("city"))

	counts, err := h.Repo.CountByIdentifier(c.Request().Context(), f)
	if err != nil {
		log.Printf("analytics: count scans: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, counts)
}

// parseDate returns the zero time for an empty value.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
