// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Defaults
const (
	DefaultAddr         = ":8080"
	DefaultEnv          = "development"
	DefaultRateLimit    = 5.0 // requests per second per client
	DefaultRateBurst    = 10
	DefaultMaxBodyBytes = 1 << 20
)

// Config holds the settings of the HTTP server
type Config struct {
	Addr           string
	Env            string
	RateLimit      float64
	RateBurst      int
	MaxBodyBytes   int64
	ConditionLimit float64
}

// Load reads an optional .env file and then the GOFRAME_* variables.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from GOFRAME_* variables
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr: getEnvOrDefault("GOFRAME_ADDR", DefaultAddr),
		Env:  getEnvOrDefault("GOFRAME_ENV", DefaultEnv),
	}

	var err error
	if cfg.RateLimit, err = parseFloat("GOFRAME_RATE_LIMIT", DefaultRateLimit); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = parseInt("GOFRAME_RATE_BURST", DefaultRateBurst); err != nil {
		return nil, err
	}
	maxBody, err := parseInt("GOFRAME_MAX_BODY_BYTES", DefaultMaxBodyBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)
	if cfg.ConditionLimit, err = parseFloat("GOFRAME_CONDITION_LIMIT", frame.DefaultConditionLimit); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("GOFRAME_ADDR must not be empty")
	}
	if c.RateLimit <= 0 {
		return errors.New("GOFRAME_RATE_LIMIT must be positive")
	}
	if c.RateBurst < 1 {
		return errors.New("GOFRAME_RATE_BURST must be at least 1")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("GOFRAME_MAX_BODY_BYTES must be positive")
	}
	if c.ConditionLimit <= 1 {
		return errors.New("GOFRAME_CONDITION_LIMIT must be greater than 1")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// NewLogger returns a production logger in production and a development
// logger otherwise
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseFloat(key string, defaultValue float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func parseInt(key string, defaultValue int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}
