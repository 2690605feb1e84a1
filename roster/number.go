package roster

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a stat that may be absent from a record. The source data is
// hand-maintained, so a field can be missing, null, a quoted number, or junk.
type Number struct {
	Value float64
	Valid bool
}

// Num returns a present Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// SortValue maps missing and NaN values to +Inf so they sort last.
func (n Number) SortValue() float64 {
	if !n.Valid || math.IsNaN(n.Value) {
		return math.Inf(1)
	}
	return n.Value
}

// Equal reports whether both numbers are present and hold the same value.
func (n Number) Equal(o Number) bool {
	return n.Valid && o.Valid && n.Value == o.Value
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		*n = Num(v)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil
		}
		*n = Num(v)
	}
	// Anything else (bool, object, array) is treated as absent.
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'f', -1, 64)), nil
}
