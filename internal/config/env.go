package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvConfig holds overrides read from REMINISCE_* environment variables.
type EnvConfig struct {
	LogLevel string   `env:"REMINISCE_LOG_LEVEL" envDefault:"info"`
	Config   string   `env:"REMINISCE_CONFIG"`
	Content  string   `env:"REMINISCE_CONTENT"`
	Addr     string   `env:"REMINISCE_ADDR"`
	Origin   string   `env:"REMINISCE_CLIENT_ORIGIN"`
	Pace     *float64 `env:"REMINISCE_PACE"`
	Record   *bool    `env:"REMINISCE_RECORD"`
}

// LoadEnv loads .env files when present, then parses REMINISCE_* variables.
func LoadEnv(files ...string) (EnvConfig, error) {
	// A missing .env file is the normal case.
	_ = godotenv.Load(files...)
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConfigPath returns the config path override or the XDG default.
func (e EnvConfig) ConfigPath() string {
	if e.Config != "" {
		return e.Config
	}
	return DefaultConfigPath()
}
