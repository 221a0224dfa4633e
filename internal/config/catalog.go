package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// ParseCatalog parses the movie selector content.  Entries are separated by
// commas and each entry is "Title|price" with a non-negative integer price.
// The title may itself contain colons but not '|' or ','.
func ParseCatalog(s string) ([]model.Movie, error) {
	var out []model.Movie
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, "|")
		if i <= 0 {
			return nil, fmt.Errorf("entry %q: want Title|price", part)
		}
		title := strings.TrimSpace(part[:i])
		price, err := strconv.ParseInt(strings.TrimSpace(part[i+1:]), 10, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("entry %q: invalid price", part)
		}
		if title == "" {
			return nil, fmt.Errorf("entry %q: empty title", part)
		}
		out = append(out, model.Movie{Index: len(out), Title: title, Price: price})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no movies")
	}
	return out, nil
}
