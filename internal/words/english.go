package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mverdejo/hangman-backend/internal/game"
)

// EnglishProvider talks to the English random-word API, which authenticates
// with a header-delivered key and answers with a word array.
type EnglishProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewEnglishProvider(baseURL, apiKey string) *EnglishProvider {
	return &EnglishProvider{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// englishResponse represents the upstream body: {"word": ["..."]}.
type englishResponse struct {
	Word []string `json:"word"`
}

func (p *EnglishProvider) Language() game.Language { return game.LanguageEnglish }

func (p *EnglishProvider) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("X-Api-Key", p.apiKey)

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

func (p *EnglishProvider) RandomWord(ctx context.Context) (string, error) {
	body, err := p.FetchRaw(ctx)
	if err != nil {
		return "", err
	}

	var parsed englishResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Word) == 0 || parsed.Word[0] == "" {
		return "", fmt.Errorf("%w: empty word list", ErrMalformedResponse)
	}

	return Normalize(parsed.Word[0]), nil
}
