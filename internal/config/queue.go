package config

import (
	"fmt"
)

type QueueConfig struct {
	URL       string `mapstructure:"url"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	QueueName string `mapstructure:"queue-name"`
}

// DialURL returns the amqp url with credentials set
func (cfg *QueueConfig) DialURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, cfg.URL)
}

func (cfg *QueueConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("queue url must be set")
	}
	if cfg.User == "" {
		return fmt.Errorf("queue user must be set")
	}
	if cfg.Password == "" {
		return fmt.Errorf("queue password must be set")
	}
	if cfg.QueueName == "" {
		return fmt.Errorf("queue name must be set")
	}

	return nil
}
