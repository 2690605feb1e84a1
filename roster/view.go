package roster

// View is the per-viewer selection state: the ranked roster together with the
// active sort key and metric. Changing the sort re-ranks the existing players
// without regrouping; changing the metric never touches membership or order.
type View struct {
	Players []*Player
	Sort    SortKey
	Metric  Metric
}

// NewView ranks players by SortFirstGame and selects MetricGames, which is
// what the chart shows on first load.
func NewView(players []*Player) *View {
	return &View{
		Players: Rank(players, SortFirstGame),
		Sort:    SortFirstGame,
		Metric:  MetricGames,
	}
}

// WithSort returns a copy of v ranked by key.
func (v *View) WithSort(key SortKey) *View {
	if key == v.Sort {
		return v
	}
	return &View{
		Players: Rank(v.Players, key),
		Sort:    key,
		Metric:  v.Metric,
	}
}

// WithMetric returns a copy of v with m selected.
func (v *View) WithMetric(m Metric) *View {
	if m == v.Metric {
		return v
	}
	return &View{Players: v.Players, Sort: v.Sort, Metric: m}
}
