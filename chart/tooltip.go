package chart

import (
	"fmt"
	"strconv"

	"player-timeline/roster"
)

// Tooltip is the hover text for one appearance under metric m, e.g.
// "2001 first-tier: 84 Games".
func Tooltip(a roster.Appearance, m roster.Metric) string {
	return fmt.Sprintf("%s %s: %s %s", formatNumber(a.Year), a.Level, formatNumber(m.Value(a)), m.Label())
}

func formatNumber(n roster.Number) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}
