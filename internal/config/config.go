package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "VESTING"

type Config struct {
	Db       DbConfig       `mapstructure:"db"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Transfer TransferConfig `mapstructure:"transfer"`
	Queue    *QueueConfig   `mapstructure:"queue"`
	Poller   PollerConfig   `mapstructure:"poller"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	LogLevel string         `mapstructure:"log-level"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}

	if err := cfg.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := cfg.Transfer.Validate(); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	// a claim lease must outlive the slowest transfer
	if cfg.Engine.LockTTL < cfg.Transfer.Timeout+LockTTLMargin {
		return fmt.Errorf(
			"engine: lock-ttl %s must be at least transfer timeout %s plus %s",
			cfg.Engine.LockTTL, cfg.Transfer.Timeout, LockTTLMargin,
		)
	}

	// queue is optional, events are dropped when it's not configured
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level %q: %w", cfg.LogLevel, err)
	}

	return nil
}

// New loads config from the yaml file at cfgFile. Every value can be
// overridden by an env variable, e.g. VESTING_DB_ADDRESS for db.address
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ClaimTransferTimeout bounds a single claim transfer so it ends before the
// claim lease expires
func (cfg *Config) ClaimTransferTimeout() time.Duration {
	budget := cfg.Engine.LockTTL - LockTTLMargin
	if cfg.Transfer.Timeout > 0 && cfg.Transfer.Timeout < budget {
		return cfg.Transfer.Timeout
	}
	return budget
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", zerolog.InfoLevel.String())
	v.SetDefault("db.type", DbTypeMongo)
	v.SetDefault("engine.lock-ttl", defaultLockTTL)
	v.SetDefault("engine.lock-max-attempts", defaultLockMaxAttempts)
	v.SetDefault("engine.lock-retry-interval", defaultLockRetryInterval)
	v.SetDefault("transfer.timeout", defaultTransferTimeout)
	v.SetDefault("poller.stats-polling-interval", defaultStatsPollingInterval)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("metrics.host", defaultMetricsHost)
	v.SetDefault("metrics.port", defaultMetricsPort)
}
