package booking

// Totals is the derived view of the selection.  It is recomputed after every
// mutation and never stored.
type Totals struct {
	Count int   `json:"count"`
	Total int64 `json:"total"`
}

// ComputeTotals returns the selected count and total price for a selection
// of the given size at the given unit price.
func ComputeTotals(selected int, unitPrice int64) Totals {
	return Totals{Count: selected, Total: int64(selected) * unitPrice}
}
