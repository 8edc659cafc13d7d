package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"4000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	R6DataBaseURL   string        `env:"R6DATA_BASE_URL" envDefault:"https://api.r6data.eu/api/stats"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	DBPath          string        `env:"DB_PATH" envDefault:"siege-tracker.db"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", cfg.UpstreamTimeout)
	}
	if cfg.R6DataBaseURL == "" {
		return nil, fmt.Errorf("R6DATA_BASE_URL is required")
	}

	return cfg, nil
}

func LogLoaded(cfg *Config, logger zerolog.Logger) {
	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("r6data_base_url", cfg.R6DataBaseURL).
		Dur("upstream_timeout", cfg.UpstreamTimeout).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("configuration loaded")
}
