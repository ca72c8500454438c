// Package words fetches random words from the per-language upstream APIs.
// Each provider can hand back the raw upstream body for the proxy endpoint or
// a parsed, normalized word for server-side sessions.
package words

import (
	"context"
	"errors"
	"fmt"

	"github.com/mverdejo/hangman-backend/internal/game"
)

// ErrProviderUnavailable covers every transport-level failure: unreachable
// network, upstream 4xx and 5xx all collapse into the same member.
var ErrProviderUnavailable = errors.New("word provider unavailable")

// ErrMalformedResponse marks an upstream body that does not match the
// expected shape for its language.
var ErrMalformedResponse = errors.New("malformed provider response")

var ErrUnsupportedLanguage = errors.New("unsupported language")

type Provider interface {
	Language() game.Language
	// FetchRaw returns the upstream body verbatim for proxying.
	FetchRaw(ctx context.Context) ([]byte, error)
	// RandomWord returns one word, lowercased with diacritics stripped.
	RandomWord(ctx context.Context) (string, error)
}

// Registry resolves the lang query parameter to a provider. An empty value
// means English.
type Registry struct {
	providers map[game.Language]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[game.Language]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Language()] = p
	}
	return r
}

func (r *Registry) Lookup(lang string) (Provider, error) {
	if lang == "" {
		lang = string(game.LanguageEnglish)
	}
	return r.ForLanguage(game.Language(lang))
}

func (r *Registry) ForLanguage(lang game.Language) (Provider, error) {
	p, ok := r.providers[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return p, nil
}
