package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/booking"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// PaymentSuccessMessage is returned with every confirmed booking.
const PaymentSuccessMessage = "Payment Successful! Thank you for booking."

// BookingHandler translates HTTP requests into state manager commands.  It
// holds no state of its own; every request resolves the caller's manager
// from the registry using the profile id set by SessionAuth.
type BookingHandler struct {
	Registry *booking.Registry
}

// NewBookingHandler constructs a BookingHandler and panics if the registry
// is nil.
func NewBookingHandler(reg *booking.Registry) *BookingHandler {
	if reg == nil {
		panic("nil registry passed to NewBookingHandler")
	}
	return &BookingHandler{Registry: reg}
}

type changeMovieRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// manager returns the caller's state manager or writes the error response.
func (h *BookingHandler) manager(c echo.Context) (*booking.Manager, error) {
	profileID := middleware.ProfileID(c)
	if profileID == "" {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	m, err := h.Registry.Get(c.Request().Context(), profileID)
	if err != nil {
		log.Printf("booking: load profile %s: %v", profileID, err)
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage_error"})
	}
	return m, nil
}

// ListMovies handles GET /v1/movies and returns the movie selector content.
func (h *BookingHandler) ListMovies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Registry.Catalog())
}

// State handles GET /v1/booking.  It returns the hydrated seat grid, both
// ordinal sets, the movie choice and the derived totals.
func (h *BookingHandler) State(c echo.Context) error {
	m, err := h.manager(c)
	if m == nil {
		return err
	}
	return c.JSON(http.StatusOK, m.Snapshot())
}

// ToggleSeat handles POST /v1/booking/seats/:ordinal/toggle.  Toggling a
// sold seat succeeds and returns the unchanged state.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil || ordinal < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat ordinal"})
	}
	m, err := h.manager(c)
	if m == nil {
		return err
	}
	snap, err := m.ToggleSeat(c.Request().Context(), ordinal)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// ChangeMovie handles PUT /v1/booking/movie with body {"index": n}.  The
// unit price is looked up in the catalog, as the selector would.
func (h *BookingHandler) ChangeMovie(c echo.Context) error {
	var body changeMovieRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "index is required and must be non-negative"})
	}
	choice, ok := h.Registry.Catalog().Choice(*body.Index)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown movie"})
	}
	m, err := h.manager(c)
	if m == nil {
		return err
	}
	snap, err := m.ChangeMovie(c.Request().Context(), choice)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// ConfirmBooking handles POST /v1/booking/confirm.  The body carries the
// payment sub-form; on success every selected seat becomes sold and 201 is
// returned with the receipt and the new state.
func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	var body model.PaymentDetails
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, err := h.manager(c)
	if m == nil {
		return err
	}
	receipt, snap, err := m.ConfirmBooking(c.Request().Context(), body)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": PaymentSuccessMessage,
		"booking": receipt,
		"state":   snap,
	})
}

// Reset handles POST /v1/booking/reset and returns every seat to available.
func (h *BookingHandler) Reset(c echo.Context) error {
	m, err := h.manager(c)
	if m == nil {
		return err
	}
	snap, err := m.Reset(c.Request().Context())
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// bookingError maps manager errors onto responses.  Validation failures are
// user-facing (422); anything else is a storage failure.
func bookingError(c echo.Context, err error) error {
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := ve.Fields
		if fields == nil {
			fields = []string{}
		}
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   "validation_error",
			"message": ve.Message,
			"fields":  fields,
		})
	case errors.Is(err, booking.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	default:
		log.Printf("booking: profile %s: %v", middleware.ProfileID(c), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage_error"})
	}
}
