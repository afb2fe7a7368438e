package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

const (
	defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	retryDelay     = 500 * time.Millisecond
)

// Provider fetches dictionary data from the FreeDictionary API. It needs no API key.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL.
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchEntry fetches a dictionary entry for the given word.
// Returns nil, nil if the word is not found (HTTP 404) or the response is empty.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	resp, err := p.doWithRetry(ctx, reqURL, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: %w: %v", provider.ErrInvalidResponse, err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	result := mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("entries", len(result.Entries)),
		slog.Bool("transcription", result.Transcription != nil),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, reqURL, word string) (*http.Response, error) {
	resp, err := p.get(ctx, reqURL)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry || ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return p.get(ctx, reqURL)
}

func (p *Provider) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return p.httpClient.Do(req)
}

// mapAPIResponse merges all etymologies into one DictionaryResult: one entry per
// meaning, definition text as the sense text. The first non-empty phonetic wins.
func mapAPIResponse(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Word:    entries[0].Word,
		Entries: []provider.EntryResult{},
	}

	for _, entry := range entries {
		if result.Transcription == nil {
			result.Transcription = firstTranscription(entry)
		}

		for _, meaning := range entry.Meanings {
			er := provider.EntryResult{
				PartOfSpeech: meaning.PartOfSpeech,
				Senses:       make([]provider.SenseResult, 0, len(meaning.Definitions)),
			}
			for i, def := range meaning.Definitions {
				sense := provider.SenseResult{
					Text:     def.Definition,
					Synonyms: append([]string{}, def.Synonyms...),
					Examples: []string{},
				}
				// Meaning-level synonyms belong to the group, attach them once.
				if i == 0 {
					sense.Synonyms = append(sense.Synonyms, meaning.Synonyms...)
				}
				if def.Example != "" {
					sense.Examples = append(sense.Examples, def.Example)
				}
				er.Senses = append(er.Senses, sense)
			}
			result.Entries = append(result.Entries, er)
		}
	}

	return result
}

func firstTranscription(entry apiEntry) *string {
	if t := strings.TrimSpace(entry.Phonetic); t != "" {
		return &t
	}
	for _, ph := range entry.Phonetics {
		if t := strings.TrimSpace(ph.Text); t != "" {
			return &t
		}
	}
	return nil
}
