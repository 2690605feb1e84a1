package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"player-timeline/chart"
	"player-timeline/roster"
)

func main() {
	_ = godotenv.Load()

	importPath := flag.String("import", "", "seed the sqlite DATA_SOURCE from a games.json file and exit")
	exportSheet := flag.Bool("export-sheet", false, "upload the ranked roster to SHEETS_URL and exit")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *importPath != "" {
		err = runImport(ctx, cfg, *importPath, logger)
	} else {
		err = run(ctx, cfg, *exportSheet, logger)
	}
	if err != nil {
		logger.Error("❌ exiting", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, exportSheet bool, logger *slog.Logger) error {
	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	src := newDataSource(cfg.DataSource, cache, logger)
	var records []roster.Appearance
	select {
	case res := <-startLoad(ctx, src):
		if res.err != nil {
			return fmt.Errorf("loading %s: %w", cfg.DataSource, res.err)
		}
		records = res.records
	case <-ctx.Done():
		return ctx.Err()
	}

	players := roster.Build(records)
	logger.Info("✅ roster built", "records", len(records), "players", len(players), "source", cfg.DataSource)

	if exportSheet {
		return runExport(ctx, cfg, players, logger)
	}

	style, err := chart.LoadStyle(cfg.ChartConfig)
	if err != nil {
		return err
	}

	handler := NewHandler(newSessionStore(players), chart.NewRenderer(style), logger)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(handler, cfg.CORSOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("⚾ Player timeline is running on http://localhost:%s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openCache(cfg Config) (datasetCache, func(), error) {
	if cfg.RedisURL == "" {
		return newMemoryCache(cfg.CacheTTL), func() {}, nil
	}
	rc, err := newRedisCache(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { rc.Close() }, nil
}

func runImport(ctx context.Context, cfg Config, path string, logger *slog.Logger) error {
	if !strings.HasPrefix(cfg.DataSource, sqlitePrefix) {
		return fmt.Errorf("-import needs DATA_SOURCE=sqlite:<path>, got %q", cfg.DataSource)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	records, err := decodeDataset(data)
	if err != nil {
		return err
	}

	db, err := openDB(strings.TrimPrefix(cfg.DataSource, sqlitePrefix))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := importAppearances(ctx, db, records); err != nil {
		return err
	}
	logger.Info("📝 imported appearances", "records", len(records), "into", cfg.DataSource)
	return nil
}

func runExport(ctx context.Context, cfg Config, players []*roster.Player, logger *slog.Logger) error {
	if cfg.SheetsURL == "" {
		return errors.New("-export-sheet needs SHEETS_URL")
	}
	key, err := roster.ParseSortKey(cfg.ExportSort)
	if err != nil {
		return fmt.Errorf("EXPORT_SORT: %w", err)
	}
	creds, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return fmt.Errorf("reading credentials: %w", err)
	}

	client, err := NewSheetsClient(ctx, creds, cfg.SheetsURL, cfg.SheetsTab)
	if err != nil {
		return err
	}
	ranked := roster.Rank(players, key)
	if err := client.UploadRoster(ctx, ranked, key); err != nil {
		return err
	}
	logger.Info("✅ roster exported", "players", len(ranked), "sort", key.Key(), "tab", cfg.SheetsTab)
	return nil
}
