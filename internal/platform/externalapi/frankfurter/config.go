// Package frankfurter provides a source adapter for ECB FX reference rates
// served by the Frankfurter API.
package frankfurter

import (
	"os"
	"time"
)

// Config holds configuration for the Frankfurter client. No API key needed.
type Config struct {
	BaseURL string        // Base URL for the API (e.g. "https://api.frankfurter.app")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Frankfurter configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("FRANKFURTER_BASE_URL")
	if base == "" {
		base = "https://api.frankfurter.app"
	}
	return Config{
		BaseURL: base,
		Timeout: 15 * time.Second,
	}
}
