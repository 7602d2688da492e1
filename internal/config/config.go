// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's runtime configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `env:"ADDR" envDefault:":8080"`

	// DBPath is the path to the SQLite database file. Parent
	// directories are created on startup.
	DBPath string `env:"DB_PATH" envDefault:"./data/fairshare.db"`

	// JWTSecret signs authentication tokens. Required.
	JWTSecret string `env:"JWT_SECRET,notEmpty"`

	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
