package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Airtable holds the upstream tabular store settings.
type Airtable struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	CacheTTL   time.Duration
}

// Validate reports whether the upstream credentials are usable. The server
// still boots without them so health probes can explain what is missing.
func (a Airtable) Validate() error {
	if a.APIKey == "" {
		return errors.New("AIRTABLE_API_KEY is not set")
	}
	if a.BaseID == "" {
		return errors.New("AIRTABLE_BASE_ID is not set")
	}
	return nil
}

// Automation holds the webhook automation platform settings.
type Automation struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string
	StatsTTL    time.Duration
	Airtable    Airtable
	Automation  Automation
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	// Missing .env is the normal case in deployed environments.
	_ = godotenv.Load()

	return Server{
		Addr:        envString("PULSEBOARD_ADDR", ":8080"),
		Environment: envString("PULSEBOARD_ENV", "development"),
		StatsTTL:    envDuration("STATS_CACHE_TTL", 5*time.Minute),
		Airtable: Airtable{
			BaseURL:    envString("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
			APIKey:     os.Getenv("AIRTABLE_API_KEY"),
			BaseID:     os.Getenv("AIRTABLE_BASE_ID"),
			Timeout:    envDuration("AIRTABLE_TIMEOUT", 30*time.Second),
			MaxRetries: envInt("AIRTABLE_MAX_RETRIES", 3),
			RetryDelay: envDuration("AIRTABLE_RETRY_DELAY", 500*time.Millisecond),
			CacheTTL:   envDuration("AIRTABLE_CACHE_TTL", 2*time.Minute),
		},
		Automation: Automation{
			BaseURL: os.Getenv("N8N_BASE_URL"),
			APIKey:  os.Getenv("N8N_API_KEY"),
			Timeout: envDuration("N8N_TIMEOUT", 30*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
