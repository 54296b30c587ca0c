package ratelimit

import (
	"strings"
)

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns nil when nothing matches. Configured paths ending in "/" match by prefix,
// and an empty Method matches any method.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Name: "health"}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.matchesMethod(method) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) && config.matchesMethod(method) {
			return config
		}
	}

	return nil
}

func (c *EndpointConfig) matchesMethod(method string) bool {
	if len(c.Methods) == 0 {
		return true
	}
	for _, m := range c.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
