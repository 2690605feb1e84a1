package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelinePage(t *testing.T) {
	data := TimelinePageData{
		Title: "Appearances",
		Metrics: []Option{
			{Key: "games", Label: "Games", Active: true},
			{Key: "avg", Label: "Batting Average"},
		},
		Sorts: []Option{
			{Key: "firstGame", Label: "First Appearance"},
			{Key: "birth", Label: "Birth Year", Active: true},
		},
		Legend:   []LegendEntry{{Label: "First tier", Color: "#60a5fa"}},
		ChartURL: "/chart.svg?zoom=1",
		Zoom:     1,
		Players: []PlayerRow{
			{Name: "<Lin & Chen>", FirstYear: "2001", Records: 3},
			{Name: "Peng", FirstYear: "2000", Records: 1, Appearances: []AppearanceRow{
				{Year: "2000", Level: "second-tier", Value: "10", Tooltip: "2000 second-tier: 10 Games"},
			}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, TimelinePage(data).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `href="?metric=games"`)
	assert.Contains(t, html, `href="?sort=birth"`)
	assert.Contains(t, html, `src="/chart.svg?zoom=1"`)
	assert.Contains(t, html, "&lt;Lin &amp; Chen&gt;")
	assert.NotContains(t, html, "<Lin & Chen>")
	assert.Contains(t, html, `<li title="2000 second-tier: 10 Games">2000 second-tier 10</li>`)
	assert.Equal(t, 1, strings.Count(html, "<details>"))
	// one active tab per group plus the active zoom link
	assert.Equal(t, 3, strings.Count(html, "bg-[#5D4037] text-white"))
}

func TestTimelinePage_EmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TimelinePage(TimelinePageData{Title: "x"}).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No players loaded.")
}
