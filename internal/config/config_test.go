package config_test

import (
	"testing"

	"github.com/cryptoguard/core/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsInvertedCacheBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.MinSize = 500
	cfg.Cache.MaxSize = 100

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.MaxSize")
}

func TestValidateRejectsZeroRateLimitCapacityWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Capacity = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rateLimit.Capacity")
}

func TestValidateAllowsZeroRateLimitCapacityWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Capacity = 0

	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeSampleRate(t *testing.T) {
	cfg := config.Default()
	cfg.Observer.SampleRate = 1.5

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "observer.SampleRate")
}

func TestValidateRejectsLowPBKDF2Iterations(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.PBKDF2Iterations = 10

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PBKDF2Iterations")
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.L1Size = 0
	cfg.Storage.KeyPrefix = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.L1Size")
	assert.Contains(t, err.Error(), "storage.KeyPrefix")
}
