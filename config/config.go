package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	Addr string `env:"RETIREMENT_ADDR" envDefault:":8080"`

	// memory, sqlite o redis
	Store          string `env:"RETIREMENT_STORE" envDefault:"sqlite"`
	SQLitePath     string `env:"RETIREMENT_SQLITE_PATH" envDefault:"retirement.db"`
	RedisAddr      string `env:"RETIREMENT_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisKeyPrefix string `env:"RETIREMENT_REDIS_PREFIX" envDefault:"retirement:"`

	Locale   string `env:"RETIREMENT_LOCALE" envDefault:"en-US"`
	Currency string `env:"RETIREMENT_CURRENCY" envDefault:"EUR"`

	RateLimitCapacity int           `env:"RETIREMENT_RATE_LIMIT" envDefault:"5"`
	RateLimitWindow   time.Duration `env:"RETIREMENT_RATE_WINDOW" envDefault:"1m"`

	LogLevel  string `env:"RETIREMENT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"RETIREMENT_LOG_FORMAT" envDefault:"text"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want memory, sqlite or redis)", c.Store)
	}
	if c.RateLimitCapacity <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimitCapacity)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", c.RateLimitWindow)
	}
	return nil
}
