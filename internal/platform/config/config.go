package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"socialdesk"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	// ContactKeyHex is the 32-byte AES key for client contact encryption,
	// hex encoded. Empty disables encryption (plaintext passthrough).
	ContactKeyHex string `env:"CONTACT_KEY_HEX"`

	EnableEndDateCompletion bool `env:"ENABLE_END_DATE_COMPLETION" envDefault:"true"`
	WorkerIntervalSeconds   int  `env:"WORKER_INTERVAL_SECONDS" envDefault:"300"`
	WorkerBatchSize         int  `env:"WORKER_BATCH_SIZE" envDefault:"100"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
