package templates

// Option is one tab or button in a selector group. Exactly one option per
// group is Active.
type Option struct {
	Key    string
	Label  string
	Active bool
}

type LegendEntry struct {
	Label string
	Color string
}

// AppearanceRow is one record under a player, with Tooltip as its hover text.
type AppearanceRow struct {
	Year    string
	Level   string
	Value   string
	Tooltip string
}

type PlayerRow struct {
	Name        string          `json:"name"`
	FirstYear   string          `json:"first_year"`
	BirthYear   string          `json:"birth_year"`
	DebutYear   string          `json:"debut_year"`
	Records     int             `json:"records"`
	Appearances []AppearanceRow `json:"appearances"`
}

type TimelinePageData struct {
	Title    string
	Metrics  []Option
	Sorts    []Option
	Legend   []LegendEntry
	ChartURL string
	Zoom     float64
	Players  []PlayerRow
}
