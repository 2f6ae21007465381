package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" env-default:":3000"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	MetricsAddr     string        `env:"METRICS_ADDR"`
	NATSURL         string        `env:"NATS_URL"`
	NATSStream      string        `env:"NATS_STREAM" env-default:"task_events"`
	NATSSubject     string        `env:"NATS_SUBJECT" env-default:"tasks.events"`
	StaticDir       string        `env:"STATIC_DIR" env-default:"public"`
	SeedTasks       bool          `env:"SEED_TASKS" env-default:"true"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	// Validation
	var missing []string
	if cfg.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	if cfg.NATSURL != "" && cfg.NATSSubject == "" {
		missing = append(missing, "NATS_SUBJECT")
	}
	if cfg.NATSURL != "" && cfg.NATSStream == "" {
		missing = append(missing, "NATS_STREAM")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %v", missing)
	}

	return &cfg, nil
}
