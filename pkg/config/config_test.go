package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("UPLOAD_MAX_KB", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, int64(2048), cfg.Storage.UploadMaxKB)
	assert.Equal(t, "dormhub:revoked", cfg.Redis.Prefix)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.example.com, http://b.example.com")
	t.Setenv("STORAGE_URL", "https://cdn.example.com/storage/")
	t.Setenv("SEED_DATA", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "https://cdn.example.com/storage", cfg.Storage.PublicURL)
	assert.True(t, cfg.Seed)
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("DORM_API_URL", "http://dorm.example.com/")
	t.Setenv("DORM_HTTP_TIMEOUT", "3s")
	t.Setenv("DORM_STATS_INTERVAL", "bogus")

	cfg := LoadClientConfig()
	assert.Equal(t, "http://dorm.example.com", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Second, cfg.StatsInterval)
	assert.NotEmpty(t, cfg.StatePath)
}
