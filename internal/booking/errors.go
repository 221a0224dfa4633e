package booking

import (
	"errors"
	"strings"
)

// ErrSeatNotFound is returned when an ordinal falls outside the seat grid.
var ErrSeatNotFound = errors.New("seat not found")

// User-facing validation messages.
const (
	MsgNoSeats      = "Please select at least one seat to book."
	MsgMissingUPI   = "Please enter your UPI ID."
	MsgMissingCard  = "Please fill all card details."
	MsgBadMethod    = "Please choose a payment method."
	MsgInvalidMovie = "Please choose a valid movie."
)

// ValidationError reports a failed precondition.  It is a blocking
// user-facing message, not a hard failure: state is never changed when one
// is returned.
type ValidationError struct {
	Message string   // message shown to the user
	Fields  []string // json names of the offending fields, if any
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation: " + e.Message
	}
	return "validation: " + e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
