package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"SNEAK_WIDTH", "SNEAK_HEIGHT", "SNEAK_SEEKERS", "SNEAK_COLLECTIBLES", "SNEAK_SEED",
	"SNEAK_SEEKER_BUDGET", "SNEAK_MAX_ATTEMPTS", "SNEAK_LOG_LEVEL", "SNEAK_HTTP_ADDR",
	"SNEAK_REQUEST_TIMEOUT", "GIN_MODE", "HONEYCOMB_SNEAKMAP_API_KEY", "HONEYCOMB_SNEAKMAP_DATASET",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 68, cfg.Width)
	assert.Equal(t, 15, cfg.Height)
	assert.Equal(t, 15, cfg.Seekers)
	assert.Equal(t, 5, cfg.Collectibles)
	assert.Zero(t, cfg.Seed)
	assert.Equal(t, 5*time.Second, cfg.SeekerBudget)
	assert.Zero(t, cfg.MaxAttempts)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "sneakmap", cfg.HoneycombDataset)
	assert.False(t, cfg.TelemetryEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNEAK_WIDTH", "40")
	t.Setenv("SNEAK_SEED", "-99")
	t.Setenv("SNEAK_SEEKER_BUDGET", "250ms")
	t.Setenv("SNEAK_LOG_LEVEL", "debug")
	t.Setenv("HONEYCOMB_SNEAKMAP_API_KEY", "key")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, int64(-99), cfg.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.SeekerBudget)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.TelemetryEnabled())
}

func TestFromEnvMalformed(t *testing.T) {
	tests := map[string]string{
		"SNEAK_HEIGHT":          "tall",
		"SNEAK_SEED":            "1.5",
		"SNEAK_SEEKER_BUDGET":   "5",
		"SNEAK_LOG_LEVEL":       "loud",
		"SNEAK_REQUEST_TIMEOUT": "soon",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := FromEnv()
			assert.ErrorContains(t, err, key)
		})
	}
}
