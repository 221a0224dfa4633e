package model

import "time"

// Payment methods offered by the payment sub-form.
const (
	PaymentUPI  = "upi"
	PaymentCard = "card"
)

// PaymentDetails carries the fields of the payment sub-form.  Only the
// fields of the chosen method are checked, and only for presence: there is
// no real transaction behind the form.
type PaymentDetails struct {
	Method     string `json:"method" validate:"oneof=upi card"`
	UPIID      string `json:"upi_id" validate:"required_if=Method upi"`
	CardNumber string `json:"card_number" validate:"required_if=Method card"`
	CardExpiry string `json:"card_expiry" validate:"required_if=Method card"`
	CardCVV    string `json:"card_cvv" validate:"required_if=Method card"`
}

// Booking is the receipt of a confirmed booking.
//
// Fields:
//
//	Seats       – ordinals moved from selected to sold, ascending.
//	Count       – number of seats booked.
//	UnitPrice   – price per seat at confirmation time.
//	Total       – Count × UnitPrice.
//	MovieIndex  – selector index of the chosen movie.
//	MovieTitle  – catalog title at MovieIndex.
//	Method      – payment method used (upi or card).
//	ConfirmedAt – UTC confirmation timestamp.
type Booking struct {
	Seats       []int     `json:"seats"`
	Count       int       `json:"count"`
	UnitPrice   int64     `json:"unit_price"`
	Total       int64     `json:"total"`
	MovieIndex  int       `json:"movie_index"`
	MovieTitle  string    `json:"movie_title,omitempty"`
	Method      string    `json:"method"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
