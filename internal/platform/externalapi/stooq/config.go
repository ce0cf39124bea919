// Package stooq provides a source adapter for Stooq daily price data.
package stooq

import (
	"os"
	"time"
)

// Config holds configuration for the Stooq client. Stooq needs no API key.
type Config struct {
	BaseURL string        // Base URL for the CSV endpoint (e.g. "https://stooq.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Stooq configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("STOOQ_BASE_URL")
	if base == "" {
		base = "https://stooq.com"
	}
	return Config{
		BaseURL: base,
		Timeout: 15 * time.Second,
	}
}
