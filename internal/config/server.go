package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

const (
	defaultServerHost  = "0.0.0.0"
	defaultServerPort  = 8080
	defaultMetricsHost = "0.0.0.0"
	defaultMetricsPort = 2112

	ServerReadTimeout  = 15 * time.Second
	ServerWriteTimeout = 60 * time.Second
	ServerIdleTimeout  = 120 * time.Second
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *ServerConfig) Validate() error {
	return validateHostPort(cfg.Host, cfg.Port)
}

func (cfg *ServerConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	return validateHostPort(cfg.Host, cfg.Port)
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}

func validateHostPort(host string, port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("port number must be between 0 and 65535, got %d", port)
	}

	if net.ParseIP(host) == nil && host != "localhost" {
		return fmt.Errorf("invalid host: %s", host)
	}

	return nil
}
