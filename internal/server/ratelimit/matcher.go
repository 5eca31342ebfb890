package ratelimit

import (
	"net/http"
	"strings"
)

// exemptPaths are never limited for GET
var exemptPaths = map[string]bool{
	"/":        true,
	"/health":  true,
	"/version": true,
}

// unlimited is returned for exempt requests
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/api/careers/" matches "/api/careers/{id}").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// CORS preflight and health probes are unlimited
	if method == http.MethodOptions || (method == http.MethodGet && exemptPaths[path]) {
		e := unlimited
		return &e
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
