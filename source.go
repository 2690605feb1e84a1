package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"player-timeline/roster"
)

const sqlitePrefix = "sqlite:"

// dataSource resolves DATA_SOURCE into appearance records. Locations are a
// JSON file path, an http(s) URL serving the same JSON, or "sqlite:<path>".
type dataSource struct {
	location string
	client   *http.Client
	cache    datasetCache
	logger   *slog.Logger
}

func newDataSource(location string, cache datasetCache, logger *slog.Logger) *dataSource {
	return &dataSource{
		location: location,
		client:   &http.Client{Timeout: 30 * time.Second},
		cache:    cache,
		logger:   logger,
	}
}

func (s *dataSource) Load(ctx context.Context) ([]roster.Appearance, error) {
	switch {
	case strings.HasPrefix(s.location, sqlitePrefix):
		db, err := openDB(strings.TrimPrefix(s.location, sqlitePrefix))
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return loadAppearancesFromDB(ctx, db)

	case strings.HasPrefix(s.location, "http://"), strings.HasPrefix(s.location, "https://"):
		data, err := s.fetchCached(ctx)
		if err != nil {
			return nil, err
		}
		return decodeDataset(data)

	default:
		data, err := os.ReadFile(s.location)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
		return decodeDataset(data)
	}
}

func (s *dataSource) fetchCached(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, s.location)
		if err != nil {
			s.logger.Warn("dataset cache read failed", "err", err)
		} else if ok {
			s.logger.Info("📦 dataset served from cache", "source", s.location)
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading dataset body: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.location, data); err != nil {
			s.logger.Warn("dataset cache write failed", "err", err)
		}
	}
	return data, nil
}

// datasetFile is the on-disk shape: [ { "games": [ ... ] } ].
type datasetFile []struct {
	Games []roster.Appearance `json:"games"`
}

// decodeDataset flattens every container's records in file order. Published
// files carry a single container; extra ones are appended rather than
// ignored. An empty outer array is an empty dataset.
func decodeDataset(data []byte) ([]roster.Appearance, error) {
	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	var out []roster.Appearance
	for _, c := range file {
		out = append(out, c.Games...)
	}
	return out, nil
}

type loadResult struct {
	records []roster.Appearance
	err     error
}

// startLoad runs the one-shot load in the background. The channel yields
// exactly one result and is then closed.
func startLoad(ctx context.Context, src *dataSource) <-chan loadResult {
	ch := make(chan loadResult, 1)
	go func() {
		defer close(ch)
		recs, err := src.Load(ctx)
		ch <- loadResult{records: recs, err: err}
	}()
	return ch
}
