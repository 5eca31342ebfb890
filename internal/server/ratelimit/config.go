package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns a per-client limit of 60 requests a minute with the default endpoint tiers.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    60,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Batch analysis fans out per pair
		{Path: "/api/career-switch/batch", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},

		// Scoring the whole catalog
		{Path: "/api/recommendations", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// Single transition reports
		{Path: "/api/career-switch", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},

		// Listings and health are handled by the default limit or exempt in the matcher
	}
}

// ParseIPList builds a lookup set from IP addresses, accepting comma-separated entries.
func ParseIPList(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range list {
		for _, ip := range strings.Split(entry, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				result[ip] = true
			}
		}
	}
	return result
}
