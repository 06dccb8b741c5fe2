package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://asset.blockedge.co/blockedge-co2e-project.json", cfg.Sources.AssetURL)
	assert.Equal(t, "https://exp.co2e.cc/api/v2", cfg.Sources.ExplorerAPIURL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProjectsTTL)
	assert.Equal(t, 30*time.Minute, cfg.Cache.NFTMetadataTTL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.StatsTTL)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"server": {"port": 9090}, "sources": {"asset_url": "https://example.com/projects.json"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://example.com/projects.json", cfg.Sources.AssetURL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "https://exp.co2e.cc/api/v2", cfg.Sources.ExplorerAPIURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CO2E_API_BASE_URL", "http://localhost:4000/api/v2")
	t.Setenv("PROJECTS_CACHE_TTL", "90s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4000/api/v2", cfg.Sources.ExplorerAPIURL)
	assert.Equal(t, 90*time.Second, cfg.Cache.ProjectsTTL)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestGetServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8081}
	assert.Equal(t, "127.0.0.1:8081", c.GetServerAddr())
}
