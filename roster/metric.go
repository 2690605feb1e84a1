package roster

import "fmt"

// Metric is the statistic that drives circle radius on the chart.
type Metric int

const (
	MetricGames Metric = iota
	MetricAvg
	MetricRuns
	MetricOPS
	MetricOBP
)

// Metrics lists every metric in tab order.
var Metrics = []Metric{MetricGames, MetricAvg, MetricRuns, MetricOPS, MetricOBP}

// Value returns the record's stat for the metric.
func (m Metric) Value(a Appearance) Number {
	switch m {
	case MetricAvg:
		return a.Avg
	case MetricRuns:
		return a.Runs
	case MetricOPS:
		return a.OPS
	case MetricOBP:
		return a.OBP
	default:
		return a.Games
	}
}

// Key is the wire name used in query strings and JSON.
func (m Metric) Key() string {
	switch m {
	case MetricAvg:
		return "avg"
	case MetricRuns:
		return "runs"
	case MetricOPS:
		return "ops"
	case MetricOBP:
		return "obp"
	default:
		return "games"
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricAvg:
		return "Batting Average"
	case MetricRuns:
		return "Runs"
	case MetricOPS:
		return "OPS"
	case MetricOBP:
		return "On-Base %"
	default:
		return "Games"
	}
}

func (m Metric) String() string { return m.Key() }

func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if m.Key() == s {
			return m, nil
		}
	}
	return MetricGames, fmt.Errorf("unknown metric %q", s)
}
