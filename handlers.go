package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"player-timeline/chart"
	"player-timeline/roster"
	"player-timeline/templates"
)

type Handler struct {
	sessions *sessionStore
	renderer *chart.Renderer
	logger   *slog.Logger
	title    string
}

func NewHandler(sessions *sessionStore, renderer *chart.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
		title:    "Player Appearance Timeline",
	}
}

func newRouter(h *Handler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Get("/", h.TimelinePage)
	r.Get("/chart.svg", h.ChartSVG)
	r.Get("/api/roster", h.Roster)
	r.Post("/api/view", h.UpdateView)
	return r
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "player-timeline",
	})
}

// selection is a requested sort and/or metric change. Empty fields leave the
// current choice alone.
type selection struct {
	Sort   string `json:"sort"`
	Metric string `json:"metric"`
}

func (sel selection) apply(v *roster.View) (*roster.View, error) {
	if sel.Sort != "" {
		key, err := roster.ParseSortKey(sel.Sort)
		if err != nil {
			return nil, err
		}
		v = v.WithSort(key)
	}
	if sel.Metric != "" {
		m, err := roster.ParseMetric(sel.Metric)
		if err != nil {
			return nil, err
		}
		v = v.WithMetric(m)
	}
	return v, nil
}

// currentView resolves the session and applies any sort/metric query params.
func (h *Handler) currentView(w http.ResponseWriter, r *http.Request) (*roster.View, error) {
	id, v := h.sessions.resolve(w, r)
	q := r.URL.Query()
	sel := selection{Sort: q.Get("sort"), Metric: q.Get("metric")}
	if sel == (selection{}) {
		return v, nil
	}
	if _, err := sel.apply(v); err != nil {
		return nil, err
	}
	return h.sessions.update(id, func(cur *roster.View) *roster.View {
		next, _ := sel.apply(cur)
		return next
	}), nil
}

func (h *Handler) TimelinePage(w http.ResponseWriter, r *http.Request) {
	v, err := h.currentView(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts, err := chartOptions(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	style := h.renderer.Style()
	data := templates.TimelinePageData{
		Title:    h.title,
		ChartURL: chartURL(v, opts),
		Zoom:     chart.ClampZoom(opts.Zoom),
		Legend: []templates.LegendEntry{
			{Label: "First tier", Color: "#" + style.FirstColor},
			{Label: "Second tier", Color: "#" + style.SecondColor},
		},
	}
	for _, m := range roster.Metrics {
		data.Metrics = append(data.Metrics, templates.Option{Key: m.Key(), Label: m.Label(), Active: m == v.Metric})
	}
	for _, k := range roster.SortKeys {
		data.Sorts = append(data.Sorts, templates.Option{Key: k.Key(), Label: k.Label(), Active: k == v.Sort})
	}
	for _, p := range v.Players {
		row := templates.PlayerRow{
			Name:      p.Name,
			FirstYear: formatNumber(p.FirstYear),
			BirthYear: formatNumber(p.BirthYear),
			DebutYear: formatNumber(p.DebutYear),
			Records:   len(p.Records),
		}
		for _, rec := range p.Records {
			row.Appearances = append(row.Appearances, templates.AppearanceRow{
				Year:    formatNumber(rec.Year),
				Level:   rec.Level,
				Value:   formatNumber(v.Metric.Value(rec)),
				Tooltip: chart.Tooltip(rec, v.Metric),
			})
		}
		data.Players = append(data.Players, row)
	}

	templ.Handler(templates.TimelinePage(data)).ServeHTTP(w, r)
}

func (h *Handler) ChartSVG(w http.ResponseWriter, r *http.Request) {
	v, err := h.currentView(w, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := chartOptions(r.URL.Query())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderSVG(&buf, v, opts); err != nil {
		h.logger.Error("chart render failed", "err", err, "players", len(v.Players))
		h.respondError(w, http.StatusInternalServerError, "chart render failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

type rosterResponse struct {
	Sort    string           `json:"sort"`
	Metric  string           `json:"metric"`
	Count   int              `json:"count"`
	Players []*roster.Player `json:"players"`
}

func newRosterResponse(v *roster.View) rosterResponse {
	players := v.Players
	if players == nil {
		players = []*roster.Player{}
	}
	return rosterResponse{
		Sort:    v.Sort.Key(),
		Metric:  v.Metric.Key(),
		Count:   len(players),
		Players: players,
	}
}

func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	v, err := h.currentView(w, r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, newRosterResponse(v))
}

const maxViewBody = 4 << 10

// UpdateView accepts a JSON body or a form post with sort and/or metric.
func (h *Handler) UpdateView(w http.ResponseWriter, r *http.Request) {
	id, _ := h.sessions.resolve(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, maxViewBody)

	var sel selection
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
			return
		}
		sel = selection{Sort: r.PostForm.Get("sort"), Metric: r.PostForm.Get("metric")}
	}

	var applyErr error
	v := h.sessions.update(id, func(cur *roster.View) *roster.View {
		next, err := sel.apply(cur)
		if err != nil {
			applyErr = err
			return cur
		}
		return next
	})
	if applyErr != nil {
		h.respondError(w, http.StatusBadRequest, applyErr.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, newRosterResponse(v))
}

func chartOptions(q url.Values) (chart.Options, error) {
	var opts chart.Options
	if z := q.Get("zoom"); z != "" {
		f, err := strconv.ParseFloat(z, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid zoom %q", z)
		}
		opts.Zoom = chart.ClampZoom(f)
	}
	for _, p := range []struct {
		key string
		dst *int
	}{{"from", &opts.From}, {"to", &opts.To}} {
		if s := q.Get(p.key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return opts, fmt.Errorf("invalid %s year %q", p.key, s)
			}
			*p.dst = n
		}
	}
	return opts, nil
}

func chartURL(v *roster.View, opts chart.Options) string {
	q := url.Values{}
	q.Set("sort", v.Sort.Key())
	q.Set("metric", v.Metric.Key())
	q.Set("zoom", strconv.FormatFloat(chart.ClampZoom(opts.Zoom), 'f', -1, 64))
	if opts.From != 0 {
		q.Set("from", strconv.Itoa(opts.From))
	}
	if opts.To != 0 {
		q.Set("to", strconv.Itoa(opts.To))
	}
	return "/chart.svg?" + q.Encode()
}

func formatNumber(n roster.Number) string {
	if !n.Valid {
		return "-"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("writing json response failed", "err", err, "status", status)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
