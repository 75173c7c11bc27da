// Package config carries the ambient configuration layer for the
// cryptoguard runtime: grouped settings for caching, rate limiting,
// performance observation, and cryptographic defaults, with sensible
// defaults and business-rule validation.
//
// The teacher's internal/config loads a struct-tag-validated Config from
// environment variables for a deployed service. cryptoguard is a library
// with no deployment-environment axis, so this Config is assembled by
// pkg/cryptocore's functional options rather than loaded from the
// environment, and validated with explicit bound checks instead of
// github.com/go-playground/validator/v10 struct tags (see DESIGN.md).
package config

import (
	"fmt"
	"time"

	"github.com/cryptoguard/core/internal/primitive"
)

// Config is the complete runtime configuration for a cryptoguard
// instance.
type Config struct {
	Cache       Cache
	RateLimit   RateLimit
	Observer    Observer
	Defaults    Defaults
	Storage     Storage
	Pool        Pool
}

// Cache contains L1/L2 cache sizing and behavior.
type Cache struct {
	L1Size                  int
	L2Enabled               bool
	TTL                     time.Duration
	MinSize                 int
	MaxSize                 int
	MemoryPressureThreshold float64
	ResizeInterval          time.Duration
	PrewarmBatchSize        int
}

// RateLimit contains token-bucket gate settings applied in front of
// sensitive operations (C8).
type RateLimit struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// Observer contains Performance Observer (C16) sampling settings.
type Observer struct {
	Enabled    bool
	Namespace  string
	MaxMetrics int
	SampleRate float64
}

// Defaults contains the cryptographic defaults applied when a caller
// omits them from an operation's options.
type Defaults struct {
	Algorithm        primitive.Algorithm
	Mode             primitive.Mode
	Padding          primitive.Padding
	RSAPadding       primitive.RSAPadding
	PBKDF2Iterations int
	HashAlgorithm    primitive.HashAlgorithm
}

// Storage contains Secure Storage (C13) namespacing settings.
type Storage struct {
	KeyPrefix string
}

// Pool contains Object & Buffer Pool (C4) sizing.
type Pool struct {
	BufferSize      int
	Base64CacheSize int
}

// Default returns the configuration a Runtime starts from before
// functional options are applied.
func Default() Config {
	return Config{
		Cache: Cache{
			L1Size:                  1000,
			L2Enabled:               false,
			TTL:                     5 * time.Minute,
			MinSize:                 100,
			MaxSize:                 10000,
			MemoryPressureThreshold: 0.8,
			ResizeInterval:          10 * time.Second,
			PrewarmBatchSize:        50,
		},
		RateLimit: RateLimit{
			Enabled:      true,
			Capacity:     100,
			RefillPerSec: 50,
		},
		Observer: Observer{
			Enabled:    true,
			Namespace:  "cryptoguard",
			MaxMetrics: 10000,
			SampleRate: 1,
		},
		Defaults: Defaults{
			Algorithm:        primitive.AES,
			Mode:             primitive.ModeCBC,
			Padding:          primitive.PKCS7,
			RSAPadding:       primitive.OAEPSHA256,
			PBKDF2Iterations: 100000,
			HashAlgorithm:    primitive.SHA256,
		},
		Storage: Storage{
			KeyPrefix: "cryptoguard:",
		},
		Pool: Pool{
			BufferSize:      4096,
			Base64CacheSize: 2000,
		},
	}
}

// Validate checks business-rule bounds the zero value and arbitrary
// functional-option combinations can't enforce structurally.
func (c Config) Validate() error {
	var errs []string

	if c.Cache.L1Size < 1 {
		errs = append(errs, "cache.L1Size must be at least 1")
	}
	if c.Cache.MaxSize < c.Cache.MinSize {
		errs = append(errs, "cache.MaxSize must be at least cache.MinSize")
	}
	if c.Cache.MemoryPressureThreshold <= 0 || c.Cache.MemoryPressureThreshold > 1 {
		errs = append(errs, "cache.MemoryPressureThreshold must be in (0,1]")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Capacity <= 0 {
			errs = append(errs, "rateLimit.Capacity must be positive when enabled")
		}
		if c.RateLimit.RefillPerSec <= 0 {
			errs = append(errs, "rateLimit.RefillPerSec must be positive when enabled")
		}
	}

	if c.Observer.SampleRate < 0 || c.Observer.SampleRate > 1 {
		errs = append(errs, "observer.SampleRate must be in [0,1]")
	}
	if c.Observer.MaxMetrics < 1 {
		errs = append(errs, "observer.MaxMetrics must be at least 1")
	}

	if c.Defaults.PBKDF2Iterations < 1000 {
		errs = append(errs, "defaults.PBKDF2Iterations must be at least 1000")
	}

	if c.Storage.KeyPrefix == "" {
		errs = append(errs, "storage.KeyPrefix must not be empty")
	}

	if c.Pool.BufferSize < 1 {
		errs = append(errs, "pool.BufferSize must be at least 1")
	}
	if c.Pool.Base64CacheSize < 1 {
		errs = append(errs, "pool.Base64CacheSize must be at least 1")
	}

	if len(errs) == 0 {
		return nil
	}
	msg := errs[0]
	for _, e := range errs[1:] {
		msg += "; " + e
	}
	return fmt.Errorf("config validation failed: %s", msg)
}
