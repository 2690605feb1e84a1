package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DataSource  string
	RedisURL    string
	CacheTTL    time.Duration
	ChartConfig string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	SheetsURL       string
	SheetsTab       string
	CredentialsFile string
	ExportSort      string
}

// loadConfig reads the environment. A .env file, if present, is loaded by
// main before this runs.
func loadConfig() (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:            get("PORT", "8080"),
		DataSource:      get("DATA_SOURCE", defaultDataSource()),
		RedisURL:        get("REDIS_URL", ""),
		ChartConfig:     get("CHART_CONFIG", ""),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogFormat:       get("LOG_FORMAT", "text"),
		SheetsURL:       get("SHEETS_URL", ""),
		SheetsTab:       get("SHEETS_TAB", "Roster"),
		CredentialsFile: get("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		ExportSort:      get("EXPORT_SORT", "firstGame"),
	}

	ttl, err := time.ParseDuration(get("CACHE_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	for _, o := range strings.Split(get("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return cfg, nil
}

// defaultDataSource prefers a sqlite file on the Railway volume when one is
// mounted, otherwise the bundled JSON file.
func defaultDataSource() string {
	if mountPath := os.Getenv("RAILWAY_VOLUME_MOUNT_PATH"); mountPath != "" {
		return "sqlite:" + filepath.Join(mountPath, "timeline.db")
	}
	return "./data/games.json"
}
