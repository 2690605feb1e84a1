package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// TimelinePage renders the chart page: metric tabs, sort buttons, legend,
// the SVG chart and a plain table of the ranked roster.
func TimelinePage(data TimelinePageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}

		p.raw(`<!doctype html><html lang="en"><head><meta charset="UTF-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		p.raw(`<title>`)
		p.text(data.Title)
		p.raw(`</title><script src="https://cdn.tailwindcss.com"></script></head>`)
		p.raw(`<body class="bg-[#F7F0E6] font-sans text-stone-800"><div class="max-w-7xl mx-auto p-6">`)
		p.raw(`<h1 class="text-3xl font-black mb-4">`)
		p.text(data.Title)
		p.raw(`</h1>`)

		if err := selector("metric", data.Metrics).Render(ctx, w); err != nil {
			return err
		}
		if err := selector("sort", data.Sorts).Render(ctx, w); err != nil {
			return err
		}
		if err := legend(data.Legend).Render(ctx, w); err != nil {
			return err
		}

		p.raw(`<div class="flex gap-2 mb-3 text-sm">`)
		for _, z := range []float64{0.5, 1, 2, 5} {
			cls := "px-3 py-1 rounded-lg border"
			if z == data.Zoom {
				cls += " bg-[#5D4037] text-white"
			}
			p.raw(`<a class="` + cls + `" href="?zoom=` + fmt.Sprint(z) + `">`)
			p.text(fmt.Sprintf("%g×", z))
			p.raw(`</a>`)
		}
		p.raw(`</div>`)

		p.raw(`<div class="overflow-auto bg-white/90 rounded-3xl p-4 shadow-2xl mb-6"><img alt="timeline" src="`)
		p.text(data.ChartURL)
		p.raw(`"></div>`)

		if err := rosterTable(data.Players).Render(ctx, w); err != nil {
			return err
		}

		p.raw(`</div></body></html>`)
		return p.err
	})
}

func selector(param string, opts []Option) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<nav class="flex gap-2 mb-3">`)
		for _, o := range opts {
			cls := "px-4 py-2 rounded-xl font-bold border border-[#5D4037]"
			if o.Active {
				cls += " bg-[#5D4037] text-white"
			}
			p.raw(`<a class="` + cls + `" href="?` + param + `=`)
			p.text(url.QueryEscape(o.Key))
			p.raw(`">`)
			p.text(o.Label)
			p.raw(`</a>`)
		}
		p.raw(`</nav>`)
		return p.err
	})
}

func legend(entries []LegendEntry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<div class="flex gap-4 mb-3 text-sm">`)
		for _, e := range entries {
			p.raw(`<span class="flex items-center gap-1"><span class="inline-block w-3 h-3 rounded-full opacity-60" style="background:`)
			p.text(e.Color)
			p.raw(`"></span>`)
			p.text(e.Label)
			p.raw(`</span>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

func rosterTable(rows []PlayerRow) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		if len(rows) == 0 {
			p.raw(`<p class="italic">No players loaded.</p>`)
			return p.err
		}
		p.raw(`<table class="w-full text-sm bg-white/90 rounded-xl"><thead><tr>`)
		for _, h := range []string{"#", "Player", "First Year", "Born", "Debut", "Records"} {
			p.raw(`<th class="text-left p-2">`)
			p.text(h)
			p.raw(`</th>`)
		}
		p.raw(`</tr></thead><tbody>`)
		for i, r := range rows {
			p.raw(`<tr class="border-t">`)
			for _, cell := range []string{fmt.Sprint(i + 1), r.Name, r.FirstYear, r.BirthYear, r.DebutYear} {
				p.raw(`<td class="p-2">`)
				p.text(cell)
				p.raw(`</td>`)
			}
			p.raw(`<td class="p-2">`)
			appearanceList(p, r)
			p.raw(`</td></tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
}

// appearanceList writes the record count as an expandable list of the
// player's appearances, each carrying its tooltip.
func appearanceList(p *printer, r PlayerRow) {
	if len(r.Appearances) == 0 {
		p.text(fmt.Sprint(r.Records))
		return
	}
	p.raw(`<details><summary class="cursor-pointer">`)
	p.text(fmt.Sprint(r.Records))
	p.raw(`</summary><ul class="mt-1 space-y-0.5">`)
	for _, a := range r.Appearances {
		p.raw(`<li title="`)
		p.text(a.Tooltip)
		p.raw(`">`)
		p.text(a.Year + " " + a.Level + " " + a.Value)
		p.raw(`</li>`)
	}
	p.raw(`</ul></details>`)
}

// printer remembers the first write error so components can write freely
// and check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}
