package config

import (
	"errors"
	"time"
)

const (
	defaultLockTTL           = 2 * time.Minute
	defaultLockMaxAttempts   = 5
	defaultLockRetryInterval = 200 * time.Millisecond

	// LockTTLMargin is the part of the claim lease reserved for the db round
	// trips around a transfer
	LockTTLMargin = 10 * time.Second
)

// EngineConfig tunes the per grant claim lock
type EngineConfig struct {
	// LockTTL must exceed the transfer timeout by at least LockTTLMargin, an
	// expired lock can be taken over by another claim
	LockTTL           time.Duration `mapstructure:"lock-ttl"`
	LockMaxAttempts   uint          `mapstructure:"lock-max-attempts"`
	LockRetryInterval time.Duration `mapstructure:"lock-retry-interval"`
}

func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		LockTTL:           defaultLockTTL,
		LockMaxAttempts:   defaultLockMaxAttempts,
		LockRetryInterval: defaultLockRetryInterval,
	}
}

func (cfg *EngineConfig) Validate() error {
	if cfg.LockTTL <= 0 {
		return errors.New("lock-ttl must be positive")
	}

	if cfg.LockMaxAttempts == 0 {
		return errors.New("lock-max-attempts must be positive")
	}

	if cfg.LockRetryInterval <= 0 {
		return errors.New("lock-retry-interval must be positive")
	}

	return nil
}
