package model

// SeatState is the presentation state of one seat in the grid.
//
// Transitions:
//
//	available --toggle--> selected --toggle--> available
//	selected  --confirm-> sold
//	sold      --reset---> available
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatSelected  SeatState = "selected"
	SeatSold      SeatState = "sold"
)

// GridSeat is a seat identified by its zero-based ordinal in the fixed
// on-page sequence.  Seats never move, so the ordinal is the identity key.
type GridSeat struct {
	Ordinal int       `json:"ordinal"`
	State   SeatState `json:"state"`
}
