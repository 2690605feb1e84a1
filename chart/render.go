// Package chart draws the player timeline: one row per player, one circle per
// appearance, x by year, radius by the selected metric, color by tier.
package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"player-timeline/roster"
)

const (
	MinZoom = 0.5
	MaxZoom = 5

	// YearSlack bounds how far a pan may move past the style's year window.
	YearSlack = 50
)

// Options are the per-request pan/zoom settings. Zero values fall back to
// the style's year window and a zoom of 1. From and To are clamped to within
// YearSlack years of that window.
type Options struct {
	Zoom float64
	From int
	To   int
}

// Dot is one drawn appearance.
type Dot struct {
	Year   float64
	Row    float64
	Radius float64
	Tier   roster.Tier
}

// Layout is the resolved geometry for a view before it is handed to the
// renderer.
type Layout struct {
	Width  int
	Height int
	From   float64
	To     float64
	Rows   []string
	Dots   []Dot
}

type Renderer struct {
	style Style
}

func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style}
}

func (r *Renderer) Style() Style { return r.style }

// ClampZoom keeps zoom inside the allowed extent.
func ClampZoom(z float64) float64 {
	if z == 0 || math.IsNaN(z) {
		return 1
	}
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// Layout computes canvas size and dot placement. The plot height grows by
// RowHeight per player; records outside the year window or without a value
// for the view's metric are dropped.
func (r *Renderer) Layout(v *roster.View, opts Options) Layout {
	s := r.style
	zoom := ClampZoom(opts.Zoom)

	lo, hi := s.YearFrom-YearSlack, s.YearTo+YearSlack
	from, to := s.YearFrom, s.YearTo
	if opts.From != 0 {
		from = min(max(opts.From, lo), hi)
	}
	if opts.To != 0 {
		to = min(max(opts.To, lo), hi)
	}
	if to <= from {
		from, to = s.YearFrom, s.YearTo
	}

	plotHeight := len(v.Players) * s.RowHeight
	l := Layout{
		Width:  int(float64(s.Width) * zoom),
		Height: int(float64(plotHeight+s.MarginTop+s.MarginBottom) * zoom),
		From:   float64(from),
		To:     float64(to),
	}

	rows := make([]string, len(v.Players))
	for i, p := range v.Players {
		rows[i] = p.Name
	}
	l.Rows = rows
	// rows are positioned in data units: 1..n from the top
	point := NewPoint(rows, float64(len(rows)+1))
	radius := s.RadiusScale(v.Metric)

	for _, p := range v.Players {
		row := point.Scale(p.Name)
		for _, rec := range p.Records {
			val := v.Metric.Value(rec)
			if !val.Valid || !rec.Year.Valid {
				continue
			}
			if rec.Year.Value < l.From || rec.Year.Value > l.To {
				continue
			}
			l.Dots = append(l.Dots, Dot{
				Year:   rec.Year.Value,
				Row:    row,
				Radius: math.Max(0, radius.Scale(val.Value)) * zoom,
				Tier:   rec.Tier(),
			})
		}
	}
	return l
}

// RenderSVG writes the view as an SVG document.
func (r *Renderer) RenderSVG(w io.Writer, v *roster.View, opts Options) error {
	l := r.Layout(v, opts)
	ch := r.build(l, v.Metric)
	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func (r *Renderer) color(hex string) drawing.Color {
	alpha := uint8(math.Round(r.style.Opacity * 255))
	return drawing.ColorFromHex(hex).WithAlpha(alpha)
}

func (r *Renderer) build(l Layout, m roster.Metric) gochart.Chart {
	s := r.style
	n := float64(len(l.Rows))
	grid := gochart.Style{StrokeColor: drawing.ColorFromHex(s.GridColor), StrokeWidth: 0.5}

	// y runs bottom-up in go-chart, so the first row gets the largest value
	yTicks := make([]gochart.Tick, 0, len(l.Rows)+2)
	yTicks = append(yTicks, gochart.Tick{Value: 0, Label: ""})
	for i := len(l.Rows) - 1; i >= 0; i-- {
		yTicks = append(yTicks, gochart.Tick{Value: n - float64(i), Label: l.Rows[i]})
	}
	yTicks = append(yTicks, gochart.Tick{Value: n + 1, Label: ""})

	var xTicks []gochart.Tick
	step := yearTickStep(l.To - l.From)
	for y := math.Ceil(l.From/step) * step; y <= l.To; y += step {
		xTicks = append(xTicks, gochart.Tick{Value: y, Label: fmt.Sprintf("%.0f", y)})
	}

	ch := gochart.Chart{
		Title:  m.Label(),
		Width:  l.Width,
		Height: l.Height,
		Background: gochart.Style{Padding: gochart.Box{
			Top:    s.MarginTop,
			Left:   s.MarginLeft,
			Right:  s.MarginRight,
			Bottom: s.MarginBottom,
		}},
		XAxis: gochart.XAxis{
			Range:          &gochart.ContinuousRange{Min: l.From, Max: l.To},
			Ticks:          xTicks,
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: n + 1},
			Ticks:          yTicks,
			GridMajorStyle: grid,
		},
	}

	tiers := []struct {
		name  string
		tier  roster.Tier
		color string
	}{
		{"First tier", roster.TierFirst, s.FirstColor},
		{"Second tier", roster.TierSecond, s.SecondColor},
		{"Other", roster.TierUnknown, s.OtherColor},
	}
	for _, t := range tiers {
		var xs, ys, radii []float64
		for _, d := range l.Dots {
			if d.Tier != t.tier {
				continue
			}
			xs = append(xs, d.Year)
			ys = append(ys, n+1-d.Row)
			radii = append(radii, d.Radius)
		}
		if len(xs) == 0 {
			continue
		}
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			Name:    t.name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotColor:    r.color(t.color),
				DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
					return radii[index]
				},
			},
		})
	}

	if len(ch.Series) == 0 {
		// go-chart needs at least one series to lay out the axes
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			XValues: []float64{l.From, l.To},
			YValues: []float64{0, n + 1},
			Style:   gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: 0},
		})
		return ch
	}

	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

const maxYearTicks = 12

// yearTickStep picks the smallest round step that keeps the x axis at or
// under maxYearTicks labels.
func yearTickStep(span float64) float64 {
	for _, step := range []float64{1, 2, 5, 10, 20, 25, 50, 100} {
		if span/step <= maxYearTicks {
			return step
		}
	}
	return math.Ceil(span / maxYearTicks)
}
