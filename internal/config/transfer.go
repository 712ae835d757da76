package config

import (
	"fmt"
	"net/url"
	"time"
)

const defaultTransferTimeout = 30 * time.Second

type TransferConfig struct {
	// URL is the base url of the transfer gateway
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func (cfg *TransferConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("transfer gateway url must be set")
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return fmt.Errorf("invalid transfer gateway url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid transfer gateway url scheme: %s", u.Scheme)
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("transfer timeout must be positive")
	}

	return nil
}
