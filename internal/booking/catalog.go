package booking

import "github.com/iliyamo/cinema-seat-booking/internal/model"

// Catalog is the ordered content of the movie selector.  Index 0 is the
// default choice on a fresh page.
type Catalog []model.Movie

// Choice returns the session choice for a selector index.
func (c Catalog) Choice(index int) (model.SessionChoice, bool) {
	if index < 0 || index >= len(c) {
		return model.SessionChoice{}, false
	}
	return model.SessionChoice{Index: index, UnitPrice: c[index].Price}, true
}

// Default returns the choice used when nothing valid has been persisted.
func (c Catalog) Default() model.SessionChoice {
	ch, _ := c.Choice(0)
	return ch
}

// Title returns the title at index, or "" when the index is unknown.
func (c Catalog) Title(index int) string {
	if index < 0 || index >= len(c) {
		return ""
	}
	return c[index].Title
}
