package chart

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"player-timeline/roster"
)

// Style holds the chart's layout and palette. Every field may be overridden
// from an HCL file; zero values keep the default.
type Style struct {
	Width        int     `hcl:"width,optional"`
	RowHeight    int     `hcl:"row_height,optional"`
	MarginTop    int     `hcl:"margin_top,optional"`
	MarginRight  int     `hcl:"margin_right,optional"`
	MarginBottom int     `hcl:"margin_bottom,optional"`
	MarginLeft   int     `hcl:"margin_left,optional"`
	YearFrom     int     `hcl:"year_from,optional"`
	YearTo       int     `hcl:"year_to,optional"`
	MinRadius    float64 `hcl:"min_radius,optional"`
	MaxRadius    float64 `hcl:"max_radius,optional"`
	Opacity      float64 `hcl:"opacity,optional"`
	FirstColor   string  `hcl:"first_tier_color,optional"`
	SecondColor  string  `hcl:"second_tier_color,optional"`
	OtherColor   string  `hcl:"other_color,optional"`
	GridColor    string  `hcl:"grid_color,optional"`

	Domains []MetricDomain `hcl:"metric,block"`
}

// MetricDomain is the value range a metric's radius scale covers.
//
//	metric "games" {
//	  max = 300
//	}
type MetricDomain struct {
	Name string  `hcl:"name,label"`
	Min  float64 `hcl:"min,optional"`
	Max  float64 `hcl:"max"`
}

func DefaultStyle() Style {
	return Style{
		Width:        1200,
		RowHeight:    30,
		MarginTop:    40,
		MarginRight:  40,
		MarginBottom: 40,
		MarginLeft:   200,
		YearFrom:     1990,
		YearTo:       2024,
		MinRadius:    2,
		MaxRadius:    15,
		Opacity:      0.6,
		FirstColor:   "60a5fa",
		SecondColor:  "f87171",
		OtherColor:   "9ca3af",
		GridColor:    "e5e7eb",
		Domains: []MetricDomain{
			{Name: "games", Max: 300},
			{Name: "avg", Max: 0.4},
			{Name: "runs", Max: 120},
			{Name: "ops", Max: 1.2},
			{Name: "obp", Max: 0.5},
		},
	}
}

// Domain returns the radius domain configured for m.
func (s Style) Domain(m roster.Metric) [2]float64 {
	for _, d := range s.Domains {
		if d.Name == m.Key() {
			return [2]float64{d.Min, d.Max}
		}
	}
	return [2]float64{0, 1}
}

// RadiusScale returns the sqrt scale used for m's circles.
func (s Style) RadiusScale(m roster.Metric) Sqrt {
	return Sqrt{Domain: s.Domain(m), Range: [2]float64{s.MinRadius, s.MaxRadius}}
}

// LoadStyle reads an HCL style file over DefaultStyle. An empty path returns
// the defaults.
func LoadStyle(path string) (Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}
	var file Style
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return Style{}, fmt.Errorf("decoding chart style %s: %w", path, err)
	}
	return merge(DefaultStyle(), file)
}

// ParseStyle is LoadStyle for in-memory sources. filename must end in .hcl.
func ParseStyle(filename string, src []byte) (Style, error) {
	var file Style
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return Style{}, fmt.Errorf("decoding chart style %s: %w", filename, err)
	}
	return merge(DefaultStyle(), file)
}

func merge(base, over Style) (Style, error) {
	setInt := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	setFloat := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setInt(&base.Width, over.Width)
	setInt(&base.RowHeight, over.RowHeight)
	setInt(&base.MarginTop, over.MarginTop)
	setInt(&base.MarginRight, over.MarginRight)
	setInt(&base.MarginBottom, over.MarginBottom)
	setInt(&base.MarginLeft, over.MarginLeft)
	setInt(&base.YearFrom, over.YearFrom)
	setInt(&base.YearTo, over.YearTo)
	setFloat(&base.MinRadius, over.MinRadius)
	setFloat(&base.MaxRadius, over.MaxRadius)
	setFloat(&base.Opacity, over.Opacity)
	setStr(&base.FirstColor, over.FirstColor)
	setStr(&base.SecondColor, over.SecondColor)
	setStr(&base.OtherColor, over.OtherColor)
	setStr(&base.GridColor, over.GridColor)

	for _, d := range over.Domains {
		if _, err := roster.ParseMetric(d.Name); err != nil {
			return Style{}, fmt.Errorf("metric block: %w", err)
		}
		if d.Max <= d.Min {
			return Style{}, fmt.Errorf("metric %q: max must be greater than min", d.Name)
		}
		replaced := false
		for i := range base.Domains {
			if base.Domains[i].Name == d.Name {
				base.Domains[i] = d
				replaced = true
			}
		}
		if !replaced {
			base.Domains = append(base.Domains, d)
		}
	}

	if base.YearTo <= base.YearFrom {
		return Style{}, fmt.Errorf("year_to (%d) must be after year_from (%d)", base.YearTo, base.YearFrom)
	}
	if base.Opacity < 0 || base.Opacity > 1 {
		return Style{}, fmt.Errorf("opacity %v out of [0,1]", base.Opacity)
	}
	return base, nil
}
