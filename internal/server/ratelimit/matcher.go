package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request to its endpoint configuration, or nil
// when only the default limit applies. Exact path matches win over prefix
// matches; a config path ending in "/" matches as a prefix, which is how
// "/runs/" covers "/runs/{id}" and its subresources.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check stays unlimited so probes never get throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") {
			if strings.HasPrefix(path, config.Path) {
				return config
			}
		}
	}

	return nil
}
