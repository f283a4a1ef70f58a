package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://api.airtable.com/v0", cfg.Airtable.BaseURL)
	assert.Equal(t, 3, cfg.Airtable.MaxRetries)
	assert.Equal(t, 2*time.Minute, cfg.Airtable.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.StatsTTL)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PULSEBOARD_ADDR", ":9090")
	t.Setenv("AIRTABLE_MAX_RETRIES", "5")
	t.Setenv("AIRTABLE_CACHE_TTL", "30s")
	t.Setenv("STATS_CACHE_TTL", "1m")
	t.Setenv("AIRTABLE_API_KEY", "key-test")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.Airtable.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Airtable.CacheTTL)
	assert.Equal(t, time.Minute, cfg.StatsTTL)
	assert.Equal(t, "key-test", cfg.Airtable.APIKey)
}

func TestAirtableValidate(t *testing.T) {
	assert.Error(t, Airtable{}.Validate())
	assert.Error(t, Airtable{APIKey: "key"}.Validate())
	assert.NoError(t, Airtable{APIKey: "key", BaseID: "appX"}.Validate())
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("AIRTABLE_TIMEOUT", "not-a-duration")
	t.Setenv("AIRTABLE_MAX_RETRIES", "many")

	cfg := FromEnv()

	assert.Equal(t, 30*time.Second, cfg.Airtable.Timeout)
	assert.Equal(t, 3, cfg.Airtable.MaxRetries)
}
