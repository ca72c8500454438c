package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"

	"github.com/mverdejo/hangman-backend/internal/game"
)

// SpanishProvider talks to the Spanish word-list API, which authenticates
// with a bearer token and answers with a results array of records.
type SpanishProvider struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewSpanishProvider(baseURL, token string) *SpanishProvider {
	return &SpanishProvider{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      token,
	}
}

// spanishResponse represents the upstream body:
// {"results": [{"Palabra": "..."}, ...]}.
type spanishResponse struct {
	Results []spanishResult `json:"results"`
}

type spanishResult struct {
	Palabra string `json:"Palabra"`
}

func (p *SpanishProvider) Language() game.Language { return game.LanguageSpanish }

func (p *SpanishProvider) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: not JSON", ErrMalformedResponse)
	}
	return body, nil
}

func (p *SpanishProvider) RandomWord(ctx context.Context) (string, error) {
	body, err := p.FetchRaw(ctx)
	if err != nil {
		return "", err
	}

	var parsed spanishResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Results) == 0 {
		return "", fmt.Errorf("%w: empty results", ErrMalformedResponse)
	}

	word := parsed.Results[rand.Intn(len(parsed.Results))].Palabra
	if word == "" {
		return "", fmt.Errorf("%w: result missing Palabra", ErrMalformedResponse)
	}

	return Normalize(word), nil
}
