package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ORS_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "test-key", cfg.Routing.APIKey)
	assert.Equal(t, "https://api.openrouteservice.org", cfg.Routing.BaseURL)
	assert.Equal(t, "driving-car", cfg.Routing.Profile)
	assert.Equal(t, 60, cfg.Routing.RequestTimeout)
	assert.Equal(t, "https://tile.openstreetmap.org/{z}/{x}/{y}.png", cfg.Basemap.TileURL)
	assert.Equal(t, 16, cfg.Basemap.MaxTiles)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "isochrone", cfg.Redis.KeyPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TilesCacheTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.InDelta(t, 25.00307729247567, cfg.Defaults.Lat, 1e-12)
	assert.InDelta(t, 55.167526256190804, cfg.Defaults.Lon, 1e-12)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ORS_API_KEY", "another-key")
	t.Setenv("ORS_PROFILE", "driving-hgv")
	t.Setenv("API_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "driving-hgv", cfg.Routing.Profile)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}

func TestValidate_MissingAPIKey(t *testing.T) {
	t.Setenv("ORS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORS_API_KEY")
}
