// Package config loads sneakmap settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application's configuration values.
type Config struct {
	Width        int // Map width in tiles
	Height       int // Map height in tiles
	Seekers      int // Requested seeker count
	Collectibles int // Requested collectible count

	// Seed for random number generation. A seed of 0 means a random seed will be generated.
	Seed int64

	SeekerBudget time.Duration // Time an attempt may spend placing seekers
	MaxAttempts  int           // Cap on full regenerations, 0 for unbounded

	LogLevel logrus.Level

	HTTPAddr       string        // Listen address for sneakd
	RequestTimeout time.Duration // Per-request generation timeout for sneakd
	GinMode        string        // Mode for the Gin framework (release, debug, test)

	HoneycombAPIKey  string // Enables tracing when set
	HoneycombDataset string
}

// TelemetryEnabled reports whether traces should be exported.
func (c Config) TelemetryEnabled() bool {
	return c.HoneycombAPIKey != ""
}

// Load reads a .env file if present and builds a Config from the environment.
// A missing .env file is not an error; malformed values are.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.Width, err = getEnvAsInt("SNEAK_WIDTH", 68); err != nil {
		return cfg, err
	}
	if cfg.Height, err = getEnvAsInt("SNEAK_HEIGHT", 15); err != nil {
		return cfg, err
	}
	if cfg.Seekers, err = getEnvAsInt("SNEAK_SEEKERS", 15); err != nil {
		return cfg, err
	}
	if cfg.Collectibles, err = getEnvAsInt("SNEAK_COLLECTIBLES", 5); err != nil {
		return cfg, err
	}
	if cfg.MaxAttempts, err = getEnvAsInt("SNEAK_MAX_ATTEMPTS", 0); err != nil {
		return cfg, err
	}

	seed := getEnvWithDefault("SNEAK_SEED", "0")
	if cfg.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
		return cfg, fmt.Errorf("environment variable SNEAK_SEED must be an integer: %w", err)
	}

	if cfg.SeekerBudget, err = getEnvAsDuration("SNEAK_SEEKER_BUDGET", 5*time.Second); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = getEnvAsDuration("SNEAK_REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return cfg, err
	}

	level := getEnvWithDefault("SNEAK_LOG_LEVEL", "info")
	if cfg.LogLevel, err = logrus.ParseLevel(level); err != nil {
		return cfg, fmt.Errorf("environment variable SNEAK_LOG_LEVEL: %w", err)
	}

	cfg.HTTPAddr = getEnvWithDefault("SNEAK_HTTP_ADDR", ":8080")
	cfg.GinMode = getEnvWithDefault("GIN_MODE", "release")
	cfg.HoneycombAPIKey = os.Getenv("HONEYCOMB_SNEAKMAP_API_KEY")
	cfg.HoneycombDataset = getEnvWithDefault("HONEYCOMB_SNEAKMAP_DATASET", "sneakmap")

	return cfg, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return n, nil
}

// getEnvAsDuration retrieves an environment variable as a Go duration such as "5s".
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be a duration: %w", key, err)
	}
	return d, nil
}
