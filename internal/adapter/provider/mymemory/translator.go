package mymemory

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/chyxhtc/simple-translate-dict/internal/provider"
)

const defaultBaseURL = "https://api.mymemory.translated.net/get"

// Translator calls the MyMemory translation API. It reports neither candidates
// nor a detected source language.
type Translator struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewTranslator creates a Translator. An empty baseURL selects the public endpoint.
func NewTranslator(baseURL string, timeout time.Duration, logger *slog.Logger) *Translator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Translator{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "mymemory"),
	}
}

// Translate translates text. An "auto" or empty source is sent as "autodetect".
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) (*provider.TranslateResult, error) {
	if sourceLang == "" || sourceLang == "auto" {
		sourceLang = "autodetect"
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", sourceLang+"|"+targetLang)
	reqURL := t.baseURL + "?" + q.Encode()

	t.log.DebugContext(ctx, "mymemory request",
		slog.String("langpair", sourceLang+"|"+targetLang),
		slog.Int("chars", len(text)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("mymemory: create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.log.ErrorContext(ctx, "mymemory request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("mymemory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mymemory: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mymemory: read body: %w", err)
	}

	text, err = parseResponse(body)
	if err != nil {
		return nil, fmt.Errorf("mymemory: %w", err)
	}

	return &provider.TranslateResult{Text: text, Candidates: []provider.CandidateGroup{}}, nil
}

// parseResponse extracts responseData.translatedText. responseStatus is sometimes
// sent as a string, so it is read leniently.
func parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: not json", provider.ErrInvalidResponse)
	}

	root := gjson.ParseBytes(body)
	if status := root.Get("responseStatus").Int(); status != http.StatusOK {
		details := root.Get("responseDetails").String()
		return "", fmt.Errorf("response status %d: %s", status, details)
	}

	text := root.Get("responseData.translatedText")
	if !text.Exists() {
		return "", fmt.Errorf("%w: missing translatedText", provider.ErrInvalidResponse)
	}
	return text.String(), nil
}
