package model

// Movie is an entry of the movie selector.  Index is the position in the
// selector and Price is the per-seat price in whole currency units.
type Movie struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	Price int64  `json:"price"`
}

// SessionChoice is the currently chosen movie and its unit price.  It is
// independent of seat state.
type SessionChoice struct {
	Index     int   `json:"index"`
	UnitPrice int64 `json:"unit_price"`
}
