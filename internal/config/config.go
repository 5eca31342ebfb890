// Package config loads service configuration from a config file and FAIRPATH_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/fairpath/internal/ranking"
	"github.com/jonathan/fairpath/internal/server/ratelimit"
)

// EnvPrefix is prepended to every environment variable, e.g. FAIRPATH_CATALOG_PATH
const EnvPrefix = "FAIRPATH"

// Catalog sources
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config is the full service configuration.
type Config struct {
	Port           int                `mapstructure:"port"`
	EnvMode        string             `mapstructure:"env_mode"`
	Log            LogConfig          `mapstructure:"log"`
	Catalog        CatalogConfig      `mapstructure:"catalog"`
	Model          ModelConfig        `mapstructure:"model"`
	EagerLoad      bool               `mapstructure:"eager_load"`
	CORSOrigins    []string           `mapstructure:"cors_origins"`
	MaxRequestSize int64              `mapstructure:"max_request_size"`
	Ranking        ranking.Thresholds `mapstructure:"ranking"`
	RateLimit      RateLimitConfig    `mapstructure:"rate_limit"`
}

// LogConfig selects the log encoder and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// CatalogConfig selects where occupations come from
type CatalogConfig struct {
	Source      string `mapstructure:"source"`       // file, postgres or sqlite
	Path        string `mapstructure:"path"`         // JSON file or SQLite database
	DatabaseURL string `mapstructure:"database_url"` // PostgreSQL connection URL
}

// ModelConfig locates the trained model artifact
type ModelConfig struct {
	Path string `mapstructure:"path"` // empty disables the learned model
}

// RateLimitConfig configures per-client request limits
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// Limiter converts the settings into a ratelimit.Config with the default endpoint tiers.
func (r RateLimitConfig) Limiter() *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         r.Enabled,
		DefaultLimit:    r.DefaultLimit,
		DefaultWindow:   r.DefaultWindow,
		CleanupInterval: r.CleanupInterval,
		Whitelist:       ratelimit.ParseIPList(r.Whitelist),
		Blacklist:       ratelimit.ParseIPList(r.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	}
}

// SetDefaults registers every key with its default so env overrides and Unmarshal see it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("env_mode", "development")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.path", "data/catalog.json")
	v.SetDefault("catalog.database_url", "")
	v.SetDefault("model.path", "data/model.json")
	v.SetDefault("eager_load", false)
	v.SetDefault("cors_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("max_request_size", 1<<20)
	v.SetDefault("ranking.high_confidence", ranking.DefaultHighConfidence)
	v.SetDefault("ranking.medium_confidence", ranking.DefaultMediumConfidence)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 60)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
}

// Load reads configuration into a Config. path may name a JSON, YAML or
// TOML file; an empty path uses defaults and environment only. v may be nil;
// callers pass their own instance to layer bound command-line flags on top.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxRequestSize <= 0 {
		return fmt.Errorf("config error: 'max_request_size' must be positive")
	}

	switch c.Catalog.Source {
	case SourceFile, SourceSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("config error: 'catalog.path' is required for source %q", c.Catalog.Source)
		}
	case SourcePostgres:
		if c.Catalog.DatabaseURL == "" {
			return fmt.Errorf("config error: 'catalog.database_url' is required for source %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("config error: unknown 'catalog.source' %q", c.Catalog.Source)
	}

	th := c.Ranking
	if th.Medium < 0 || th.High > 1 || th.Medium > th.High {
		return fmt.Errorf("config error: confidence thresholds must satisfy 0 <= medium <= high <= 1, got medium=%v high=%v", th.Medium, th.High)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.DefaultLimit <= 0 {
			return fmt.Errorf("config error: 'rate_limit.default_limit' must be positive")
		}
		if c.RateLimit.DefaultWindow <= 0 {
			return fmt.Errorf("config error: 'rate_limit.default_window' must be positive")
		}
	}

	return nil
}

// IsProduction reports whether env_mode is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.EnvMode, "production")
}
