package config

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DefaultsAndRequiredKeys(t *testing.T) {
	t.Setenv("ENGLISH_API_URL", "https://en.example.com/word")
	t.Setenv("ENGLISH_API_KEY", "k")
	t.Setenv("SPANISH_API_URL", "https://es.example.com/palabras")
	t.Setenv("SPANISH_API_TOKEN", "tok")

	var cfg Config
	require.NoError(t, env.Parse(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestParse_MissingCredentialFails(t *testing.T) {
	t.Setenv("ENGLISH_API_URL", "https://en.example.com/word")
	t.Setenv("ENGLISH_API_KEY", "")
	t.Setenv("SPANISH_API_URL", "https://es.example.com/palabras")
	t.Setenv("SPANISH_API_TOKEN", "tok")

	var cfg Config
	assert.Error(t, env.Parse(&cfg))
}
