// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// BookingQueueName is the durable queue carrying confirmed bookings.
const BookingQueueName = "booking.confirmed"

// BookingConfirmedEvent is published when the state manager commits a
// booking.  It carries enough for downstream consumers to log or notify
// without reading the profile's store.
type BookingConfirmedEvent struct {
	ProfileID   string `json:"profile_id"`
	MovieIndex  int    `json:"movie_index"`
	MovieTitle  string `json:"movie_title"`
	Seats       []int  `json:"seats"`
	UnitPrice   int64  `json:"unit_price"`
	Total       int64  `json:"total"`
	Method      string `json:"payment_method"`
	ConfirmedAt string `json:"confirmed_at"` // RFC3339, UTC
}

// FormatTime renders timestamps the way ConfirmedAt expects them.
func FormatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }
