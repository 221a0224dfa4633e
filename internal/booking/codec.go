package booking

import (
	"encoding/json"
	"strconv"
)

// encodeOrdinals serializes ordinals as a JSON array.  A nil slice encodes as
// [] so readers never see null.
func encodeOrdinals(ords []int) string {
	if ords == nil {
		ords = []int{}
	}
	b, _ := json.Marshal(ords)
	return string(b)
}

// decodeOrdinals parses a JSON array of integers.  JSON null decodes to an
// empty set.
func decodeOrdinals(raw string) ([]int, error) {
	var ords []int
	if err := json.Unmarshal([]byte(raw), &ords); err != nil {
		return nil, err
	}
	return ords, nil
}

func formatInt(n int64) string { return strconv.FormatInt(n, 10) }
