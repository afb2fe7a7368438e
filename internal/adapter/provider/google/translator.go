package google

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

const defaultBaseURL = "https://translate.googleapis.com/translate_a/single"

// Translator calls the Google Translate web endpoint (client=gtx).
type Translator struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewTranslator creates a Translator. An empty baseURL selects the public endpoint;
// a zero timeout leaves requests bounded only by ctx.
func NewTranslator(baseURL string, timeout time.Duration, logger *slog.Logger) *Translator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Translator{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "google_translate"),
	}
}

// Translate translates text and collects dictionary-style candidates.
// The call is not retried.
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (*provider.TranslateResult, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sourceLang)
	q.Set("tl", targetLang)
	q["dt"] = []string{"t", "bd", "rm"}
	q.Set("q", text)
	reqURL := t.baseURL + "?" + q.Encode()

	t.log.DebugContext(ctx, "google translate request",
		slog.String("sl", sourceLang),
		slog.String("tl", targetLang),
		slog.Int("chars", len(text)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.ErrorContext(ctx, "google translate request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("google: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google: read body: %w", err)
	}

	result, err := parseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("google: %w", err)
	}

	t.log.DebugContext(ctx, "google translate response",
		slog.String("source", result.SourceLanguage),
		slog.Int("candidates", len(result.Candidates)),
	)

	return result, nil
}

// parseResponse reads the nested array response:
// [0] translated segments, [1] candidate groups [pos, [words...]], [2] detected source language.
func parseResponse(body []byte) (*provider.TranslateResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: not json", provider.ErrInvalidResponse)
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: root is not an array", provider.ErrInvalidResponse)
	}

	result := &provider.TranslateResult{
		Text:       root.Get("0.0.0").String(),
		Candidates: []provider.CandidateGroup{},
	}

	if groups := root.Get("1"); groups.IsArray() {
		groups.ForEach(func(_, group gjson.Result) bool {
			if !group.IsArray() {
				return true
			}
			words := []string{}
			for _, w := range group.Get("1").Array() {
				words = append(words, w.String())
			}
			result.Candidates = append(result.Candidates, provider.CandidateGroup{
				PartOfSpeech: group.Get("0").String(),
				Words:        words,
			})
			return true
		})
	}

	// The detected language is usually a bare string but some responses wrap it in an array.
	if src := root.Get("2"); src.IsArray() {
		result.SourceLanguage = src.Get("0").String()
	} else if src.Type == gjson.String {
		result.SourceLanguage = src.String()
	}

	return result, nil
}
