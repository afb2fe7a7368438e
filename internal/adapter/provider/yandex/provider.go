package yandex

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
	defaultBaseURL = "https://dictionary.yandex.net/api/v1/dicservice.json"
	defaultLang    = "en-en"
)

// KeySource supplies the API key at call time so settings updates apply without a restart.
type KeySource interface {
	DictionaryAPIKey() string
}

// Provider fetches dictionary data from the Yandex Dictionary API.
type Provider struct {
	baseURL    string
	lang       string
	keys       KeySource
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider. Empty baseURL and lang select the public API and en-en.
func NewProvider(baseURL, lang string, timeout time.Duration, keys KeySource, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if lang == "" {
		lang = defaultLang
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		lang:       lang,
		keys:       keys,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "yandex"),
	}
}

// FetchEntry looks up a single word.
// Returns nil, nil when the API knows nothing about the word.
// Returns provider.ErrNotConfigured without any HTTP call when no API key is set.
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	key := strings.TrimSpace(p.keys.DictionaryAPIKey())
	if key == "" {
		return nil, fmt.Errorf("yandex: %w: missing api key", provider.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("key", key)
	q.Set("lang", p.lang)
	q.Set("text", word)
	reqURL := p.baseURL + "/lookup?" + q.Encode()

	p.log.DebugContext(ctx, "yandex request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("yandex: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.ErrorContext(ctx, "yandex request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("yandex: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yandex: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yandex: read body: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("yandex: %w: %v", provider.ErrInvalidResponse, err)
	}

	if len(parsed.Def) == 0 {
		return nil, nil
	}

	result := mapAPIResponse(word, parsed.Def)

	p.log.DebugContext(ctx, "yandex response",
		slog.String("word", word),
		slog.Int("entries", len(result.Entries)),
	)

	return result, nil
}

// mapAPIResponse converts articles into a DictionaryResult. The transcription
// comes from the first article.
func mapAPIResponse(word string, defs []apiDef) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Word:    word,
		Entries: make([]provider.EntryResult, 0, len(defs)),
	}

	if ts := defs[0].Ts; ts != "" {
		result.Transcription = &ts
	}

	for _, def := range defs {
		entry := provider.EntryResult{
			PartOfSpeech: def.Pos,
			Senses:       make([]provider.SenseResult, 0, len(def.Tr)),
		}
		for _, tr := range def.Tr {
			entry.Senses = append(entry.Senses, provider.SenseResult{
				Text:     tr.Text,
				Synonyms: texts(tr.Syn),
				Examples: texts(tr.Ex),
			})
		}
		result.Entries = append(result.Entries, entry)
	}

	return result
}

func texts(items []apiText) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Text != "" {
			out = append(out, it.Text)
		}
	}
	return out
}
