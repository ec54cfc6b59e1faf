package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"GOFRAME_ADDR", "GOFRAME_ENV", "GOFRAME_RATE_LIMIT", "GOFRAME_RATE_BURST",
	"GOFRAME_MAX_BODY_BYTES", "GOFRAME_CONDITION_LIMIT",
}

// clearEnv unsets every GOFRAME_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, DefaultEnv, cfg.Env)
	assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
	assert.Equal(t, DefaultRateBurst, cfg.RateBurst)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
	assert.Equal(t, frame.DefaultConditionLimit, cfg.ConditionLimit)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOFRAME_ADDR", "127.0.0.1:9000")
	t.Setenv("GOFRAME_ENV", "production")
	t.Setenv("GOFRAME_RATE_LIMIT", "0.5")
	t.Setenv("GOFRAME_RATE_BURST", "2")
	t.Setenv("GOFRAME_MAX_BODY_BYTES", "4096")
	t.Setenv("GOFRAME_CONDITION_LIMIT", "1e10")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 0.5, cfg.RateLimit)
	assert.Equal(t, 2, cfg.RateBurst)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	assert.Equal(t, 1e10, cfg.ConditionLimit)

	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"GOFRAME_RATE_LIMIT":      "fast",
		"GOFRAME_RATE_BURST":      "0",
		"GOFRAME_MAX_BODY_BYTES":  "-1",
		"GOFRAME_CONDITION_LIMIT": "1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, so unset them
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOFRAME_ADDR=:7070\nGOFRAME_RATE_BURST=3\n"), 0644))
	t.Cleanup(func() {
		os.Unsetenv("GOFRAME_ADDR")
		os.Unsetenv("GOFRAME_RATE_BURST")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 3, cfg.RateBurst)

	// A missing file is not an error
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
