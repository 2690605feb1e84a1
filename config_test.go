package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/games.json", cfg.DataSource)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "/data")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite:/data/timeline.db", cfg.DataSource)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfig_BadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "forever")
	_, err := loadConfig()
	assert.Error(t, err)
}
