package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, "data/catalog.json", cfg.Catalog.Path)
	assert.Equal(t, "data/model.json", cfg.Model.Path)
	assert.Equal(t, int64(1<<20), cfg.MaxRequestSize)
	assert.Equal(t, 0.75, cfg.Ranking.High)
	assert.Equal(t, 0.5, cfg.Ranking.Medium)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.DefaultWindow)
	assert.False(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	content := `
port: 9090
env_mode: production
log:
  json: true
catalog:
  source: sqlite
  path: /var/lib/fairpath/catalog.db
ranking:
  high_confidence: 0.8
  medium_confidence: 0.6
rate_limit:
  default_limit: 5
  default_window: 10s
  whitelist: ["10.0.0.1"]
`
	path := filepath.Join(t.TempDir(), "fairpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, SourceSQLite, cfg.Catalog.Source)
	assert.Equal(t, 0.8, cfg.Ranking.High)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.DefaultWindow)

	lim := cfg.RateLimit.Limiter()
	assert.Equal(t, 5, lim.DefaultLimit)
	assert.True(t, lim.Whitelist["10.0.0.1"])
	assert.NotEmpty(t, lim.EndpointConfigs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FAIRPATH_PORT", "7070")
	t.Setenv("FAIRPATH_CATALOG_SOURCE", "postgres")
	t.Setenv("FAIRPATH_CATALOG_DATABASE_URL", "postgres://localhost/fairpath")
	t.Setenv("FAIRPATH_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, "postgres://localhost/fairpath", cfg.Catalog.DatabaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BoundInstance(t *testing.T) {
	v := viper.New()
	v.Set("port", 1234)

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Port)
}

func TestLoad_IgnoresDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FAIRPATH_PORT=9999\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	_, set := os.LookupEnv("FAIRPATH_PORT")
	assert.False(t, set)
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(nil, "/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{ invalid json }"), 0644))
	_, err = Load(nil, path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(nil, "")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Port = 0 }, "'port'"},
		{"request size", func(c *Config) { c.MaxRequestSize = 0 }, "max_request_size"},
		{"catalog path", func(c *Config) { c.Catalog.Path = "" }, "catalog.path"},
		{"postgres url", func(c *Config) { c.Catalog.Source = SourcePostgres }, "catalog.database_url"},
		{"unknown source", func(c *Config) { c.Catalog.Source = "s3" }, "unknown 'catalog.source'"},
		{"thresholds", func(c *Config) { c.Ranking.Medium = 0.9 }, "confidence thresholds"},
		{"rate limit", func(c *Config) { c.RateLimit.DefaultLimit = 0 }, "rate_limit.default_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := valid()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.DefaultLimit = 0
	assert.NoError(t, cfg.Validate())
}
