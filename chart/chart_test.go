package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"player-timeline/roster"
)

func sampleView() *roster.View {
	return roster.NewView(roster.Build([]roster.Appearance{
		{Player: "A", Year: roster.Num(2000), Level: "second-tier", Games: roster.Num(10), Avg: roster.Num(0.25)},
		{Player: "B", Year: roster.Num(2000), Level: "first-tier", Games: roster.Num(300)},
		{Player: "C", Year: roster.Num(1999), Level: "first-tier", Games: roster.Num(0)},
		{Player: "C", Year: roster.Num(1985), Level: "first-tier", Games: roster.Num(40)},
	}))
}

func TestSqrt(t *testing.T) {
	s := Sqrt{Domain: [2]float64{0, 300}, Range: [2]float64{2, 15}}
	assert.InDelta(t, 2, s.Scale(0), 1e-9)
	assert.InDelta(t, 15, s.Scale(300), 1e-9)
	assert.InDelta(t, 2+13*math.Sqrt(75)/math.Sqrt(300), s.Scale(75), 1e-9)

	flat := Sqrt{Domain: [2]float64{4, 4}, Range: [2]float64{1, 9}}
	assert.Equal(t, 1.0, flat.Scale(100))
}

func TestPoint(t *testing.T) {
	p := NewPoint([]string{"x", "y", "z"}, 400)
	assert.Equal(t, 100.0, p.Step())
	assert.Equal(t, 100.0, p.Scale("x"))
	assert.Equal(t, 300.0, p.Scale("z"))
	assert.True(t, math.IsNaN(p.Scale("missing")))

	single := NewPoint([]string{"only"}, 60)
	assert.Equal(t, 30.0, single.Scale("only"))
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 1.0, ClampZoom(0))
	assert.Equal(t, MinZoom, ClampZoom(0.1))
	assert.Equal(t, float64(MaxZoom), ClampZoom(40))
	assert.Equal(t, 2.5, ClampZoom(2.5))
}

func TestLayout_HeightTracksRosterSize(t *testing.T) {
	r := NewRenderer(DefaultStyle())
	l := r.Layout(sampleView(), Options{})

	assert.Equal(t, 1200, l.Width)
	assert.Equal(t, 3*30+40+40, l.Height)
	assert.Equal(t, []string{"C", "B", "A"}, l.Rows)

	zoomed := r.Layout(sampleView(), Options{Zoom: 2})
	assert.Equal(t, 2400, zoomed.Width)
	assert.Equal(t, 2*l.Height, zoomed.Height)
}

func TestLayout_Dots(t *testing.T) {
	r := NewRenderer(DefaultStyle())
	l := r.Layout(sampleView(), Options{})

	// C's 1985 record falls outside the default 1990-2024 window
	require.Len(t, l.Dots, 3)
	byRow := map[float64]Dot{}
	for _, d := range l.Dots {
		byRow[d.Row] = d
	}
	assert.Equal(t, roster.TierFirst, byRow[1].Tier)
	assert.InDelta(t, 2, byRow[1].Radius, 1e-9)
	assert.InDelta(t, 15, byRow[2].Radius, 1e-9)
	assert.Equal(t, roster.TierSecond, byRow[3].Tier)

	panned := r.Layout(sampleView(), Options{From: 1980, To: 2000})
	assert.Len(t, panned.Dots, 4)
}

func TestLayout_SkipsRecordsWithoutMetric(t *testing.T) {
	r := NewRenderer(DefaultStyle())
	l := r.Layout(sampleView().WithMetric(roster.MetricAvg), Options{})
	require.Len(t, l.Dots, 1)
	assert.Equal(t, 2000.0, l.Dots[0].Year)
}

func TestLayout_InvertedWindowFallsBack(t *testing.T) {
	r := NewRenderer(DefaultStyle())
	l := r.Layout(sampleView(), Options{From: 2010, To: 2000})
	assert.Equal(t, 1990.0, l.From)
	assert.Equal(t, 2024.0, l.To)
}

func TestLayout_PanIsBounded(t *testing.T) {
	r := NewRenderer(DefaultStyle())

	l := r.Layout(sampleView(), Options{From: 1990, To: 2_000_000_000})
	assert.Equal(t, 1990.0, l.From)
	assert.Equal(t, float64(2024+YearSlack), l.To)

	l = r.Layout(sampleView(), Options{From: -2_000_000_000, To: 2000})
	assert.Equal(t, float64(1990-YearSlack), l.From)
	assert.Equal(t, 2000.0, l.To)

	ch := r.build(r.Layout(sampleView(), Options{From: -2_000_000_000, To: 2_000_000_000}), roster.MetricGames)
	assert.LessOrEqual(t, len(ch.XAxis.Ticks), maxYearTicks+1)
}

func TestYearTickStep(t *testing.T) {
	tests := []struct {
		span float64
		want float64
	}{
		{5, 1},
		{20, 2},
		{34, 5},
		{134, 20},
		{5000, 417},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, yearTickStep(tt.span), "span %v", tt.span)
	}
}

func TestTooltip(t *testing.T) {
	a := roster.Appearance{Year: roster.Num(2001), Level: "first-tier", Games: roster.Num(84)}
	assert.Equal(t, "2001 first-tier: 84 Games", Tooltip(a, roster.MetricGames))
	assert.Equal(t, "2001 first-tier: - Batting Average", Tooltip(a, roster.MetricAvg))
}

func TestRenderSVG(t *testing.T) {
	r := NewRenderer(DefaultStyle())

	var buf bytes.Buffer
	require.NoError(t, r.RenderSVG(&buf, sampleView(), Options{}))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, r.RenderSVG(&buf, roster.NewView(nil), Options{}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestParseStyle(t *testing.T) {
	src := []byte(`
width      = 900
row_height = 24
year_from  = 2000

metric "games" {
  max = 160
}

metric "ops" {
  min = 0.3
  max = 1.4
}
`)
	s, err := ParseStyle("style.hcl", src)
	require.NoError(t, err)
	assert.Equal(t, 900, s.Width)
	assert.Equal(t, 24, s.RowHeight)
	assert.Equal(t, 2000, s.YearFrom)
	assert.Equal(t, 2024, s.YearTo)
	assert.Equal(t, 200, s.MarginLeft)
	assert.Equal(t, [2]float64{0, 160}, s.Domain(roster.MetricGames))
	assert.Equal(t, [2]float64{0.3, 1.4}, s.Domain(roster.MetricOPS))
	assert.Equal(t, [2]float64{0, 0.4}, s.Domain(roster.MetricAvg))
}

func TestParseStyle_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown metric", `metric "slg" { max = 1 }`},
		{"empty domain", `metric "avg" { max = 0 }`},
		{"inverted years", "year_from = 2030\n"},
		{"opacity", "opacity = 3\n"},
		{"unknown attribute", "colour = \"red\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStyle("style.hcl", []byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoadStyle_EmptyPathIsDefault(t *testing.T) {
	s, err := LoadStyle("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), s)
}
