// Package config loads service configuration from the process environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads at startup. The two credentials
// stay server-side; nothing here is ever sent to clients.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	EnglishAPIURL string `env:"ENGLISH_API_URL,notEmpty"`
	EnglishAPIKey string `env:"ENGLISH_API_KEY,notEmpty"`

	SpanishAPIURL   string `env:"SPANISH_API_URL,notEmpty"`
	SpanishAPIToken string `env:"SPANISH_API_TOKEN,notEmpty"`

	// Optional; leaderboard persistence is skipped when unset.
	DatabaseURL string `env:"DATABASE_URL"`
}

// Load reads .env when present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
