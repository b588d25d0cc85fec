package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN     string `env:"DATABASE_DSN,required=true"`
	RedisURL        string `env:"REDIS_URL,required=true"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE,default=Europe/Moscow"`
	NotifyMirrorURL string `env:"NOTIFY_MIRROR_URL"`
	PollRatePerSec  int    `env:"POLL_RATE_PER_SEC,default=5"`
	APIPort         int    `env:"API_PORT,default=8080"`
	LogLevel        string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
