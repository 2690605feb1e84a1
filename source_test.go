package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"player-timeline/roster"
)

const sampleDataset = `[{"games":[
	{"player":"A","year":2000,"level":"second-tier","games":10,"birthYear":1978},
	{"player":"B","year":2000,"level":"first-tier","games":5,"avg":"0.281"},
	{"player":"C","year":1999,"level":"first-tier","games":20,"debutYear":null}
]}]`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeDataset(t *testing.T) {
	recs, err := decodeDataset([]byte(sampleDataset))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "A", recs[0].Player)
	assert.Equal(t, roster.Num(1978), recs[0].BirthYear)
	assert.Equal(t, roster.Num(0.281), recs[1].Avg)
	assert.False(t, recs[2].DebutYear.Valid)
}

func TestDecodeDataset_Shapes(t *testing.T) {
	recs, err := decodeDataset([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = decodeDataset([]byte(`[{"games":[{"player":"A","year":1}]},{"games":[{"player":"B","year":2}]}]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "B", recs[1].Player)

	_, err = decodeDataset([]byte(`{"games":[]}`))
	assert.Error(t, err)
}

func TestDataSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))

	res := <-startLoad(context.Background(), newDataSource(path, nil, discardLogger()))
	require.NoError(t, res.err)
	assert.Len(t, res.records, 3)

	_, err := newDataSource(filepath.Join(t.TempDir(), "missing.json"), nil, discardLogger()).Load(context.Background())
	assert.Error(t, err)
}

func TestDataSource_HTTPUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleDataset)
	}))
	defer srv.Close()

	cache := newMemoryCache(time.Hour)
	src := newDataSource(srv.URL+"/data/games.json", cache, discardLogger())

	for i := 0; i < 2; i++ {
		recs, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, recs, 3)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestDataSource_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newDataSource(srv.URL, newMemoryCache(time.Hour), discardLogger()).Load(context.Background())
	assert.ErrorContains(t, err, "404")
}

func TestDataSource_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.db")
	recs, err := decodeDataset([]byte(sampleDataset))
	require.NoError(t, err)

	db, err := openDB(path)
	require.NoError(t, err)
	require.NoError(t, importAppearances(context.Background(), db, recs))
	require.NoError(t, db.Close())

	loaded, err := newDataSource(sqlitePrefix+path, nil, discardLogger()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, recs, loaded)

	ranked := roster.Rank(roster.Build(loaded), roster.SortFirstGame)
	assert.Equal(t, "C", ranked[0].Name)
	assert.Equal(t, "B", ranked[1].Name)
	assert.Equal(t, "A", ranked[2].Name)
}

func TestMemoryCache_Expires(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v")))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCaches_ZeroTTLDisablesCaching(t *testing.T) {
	ctx := context.Background()

	mc := newMemoryCache(0)
	require.NoError(t, mc.Set(ctx, "k", []byte("v")))
	_, ok, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, mc.data)

	// nothing listens on this port; Set must return before dialing
	rc, err := newRedisCache("redis://127.0.0.1:1/0", 0)
	require.NoError(t, err)
	defer rc.Close()
	assert.NoError(t, rc.Set(ctx, "k", []byte("v")))
}
