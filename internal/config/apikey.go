package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyConfig holds the bcrypt hashes of API keys accepted on the public score endpoint.
type APIKeyConfig struct {
	BcryptCost int
	Hashes     []string
}

// NewAPIKeyConfig creates the API key configuration from environment variables.
// It reads BCRYPT_COST (default: 12) and API_KEY_HASHES (comma-separated bcrypt hashes).
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &APIKeyConfig{
		BcryptCost: cost,
		Hashes:     splitHashes(os.Getenv("API_KEY_HASHES")),
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func splitHashes(raw string) []string {
	var hashes []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hashes = append(hashes, h)
		}
	}
	return hashes
}

// normalize validates the configuration.
func (c *APIKeyConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// Enabled reports whether any API key is configured.
func (c *APIKeyConfig) Enabled() bool {
	return len(c.Hashes) > 0
}

// HashAPIKey hashes a plaintext key for storage in API_KEY_HASHES.
func (c *APIKeyConfig) HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("api key is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}

	return string(hash), nil
}

// VerifyAPIKey compares the key against every configured hash and reports a match.
func (c *APIKeyConfig) VerifyAPIKey(key string) bool {
	if key == "" {
		return false
	}
	for _, hash := range c.Hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			return true
		}
	}
	return false
}
