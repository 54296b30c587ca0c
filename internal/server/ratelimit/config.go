package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a group of endpoints.
type EndpointConfig struct {
	Name    string        // Bucket group; requests in one group share an allowance
	Path    string        // Exact path, or a prefix when it ends with "/"
	Methods []string      // Empty matches every method
	Limit   int           // Maximum requests per window
	Window  time.Duration // Time window
	Burst   int           // Burst capacity (defaults to Limit if 0)
}

func (c *EndpointConfig) key() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Path + " " + strings.Join(c.Methods, ",")
}

// Group names for the built-in endpoint limits
const (
	GroupPublicScore = "public_score"
	GroupWrites      = "facilitator_writes"
)

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: EndpointConfigs(
			getEnvInt("RATE_LIMIT_SCORE_LIMIT", 50),
			getEnvDuration("RATE_LIMIT_SCORE_WINDOW", 15*time.Minute),
			getEnvInt("RATE_LIMIT_WRITE_LIMIT", 100),
		),
	}
}

// DefaultEndpointConfigs returns the built-in endpoint limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return EndpointConfigs(50, 15*time.Minute, 100)
}

// EndpointConfigs builds the endpoint limits: the public score endpoint gets
// scoreLimit requests per scoreWindow, facilitator writes get writeLimit per minute.
// Reads fall through to the default limit.
func EndpointConfigs(scoreLimit int, scoreWindow time.Duration, writeLimit int) []EndpointConfig {
	return []EndpointConfig{
		{
			Name:    GroupPublicScore,
			Path:    "/api/public/score",
			Methods: []string{"POST"},
			Limit:   scoreLimit,
			Window:  scoreWindow,
			Burst:   scoreLimit,
		},
		{
			Name:    GroupWrites,
			Path:    "/api/facilitators/",
			Methods: []string{"POST", "PUT"},
			Limit:   writeLimit,
			Window:  time.Minute,
			Burst:   max(writeLimit/10, 1),
		},
	}
}

func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
