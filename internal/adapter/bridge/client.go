package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chyxhtc/simple-translate-dict/internal/domain"
	"github.com/chyxhtc/simple-translate-dict/internal/panel"
)

const (
	defaultBaseURL = "http://127.0.0.1:8787"
	messagePath    = "/api/message"

	// defaultFailureMessage is shown when a translate message gets no usable answer.
	defaultFailureMessage = "Translation failed"
)

// Client sends messages to a running bridge server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client. An empty baseURL selects the local default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "bridge"),
	}
}

type message struct {
	Message      string `json:"message"`
	Text         string `json:"text,omitempty"`
	SourceLang   string `json:"sourceLang,omitempty"`
	TargetLang   string `json:"targetLang,omitempty"`
	NeedPhonetic bool   `json:"needPhonetic,omitempty"`
	PhoneticOnly bool   `json:"phoneticOnly,omitempty"`
	Word         string `json:"word,omitempty"`
}

// Lookup sends a translate message. Transport failures come back as error
// results, never as an error; the error return only reports a done ctx.
func (c *Client) Lookup(ctx context.Context, req domain.LookupRequest) (*domain.LookupResult, error) {
	var res domain.LookupResult
	err := c.send(ctx, message{
		Message:      "translate",
		Text:         req.Text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		NeedPhonetic: req.NeedPhonetic,
		PhoneticOnly: req.PhoneticOnly,
	}, &res)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.WarnContext(ctx, "translate message failed", slog.String("error", err.Error()))
		return domain.NewErrorResult(defaultFailureMessage), nil
	}
	if res.IsError && res.ErrorMessage == "" {
		res.ErrorMessage = defaultFailureMessage
	}
	return &res, nil
}

// WordDetails sends a getWordDetails message. A null answer yields nil.
func (c *Client) WordDetails(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	var entry *domain.DictionaryEntry
	if err := c.send(ctx, message{Message: "getWordDetails", Word: word}, &entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ResolveAudio sends a resolveAudio message.
func (c *Client) ResolveAudio(ctx context.Context, word string) (panel.AudioOutcome, error) {
	var out panel.AudioOutcome
	if err := c.send(ctx, message{Message: "resolveAudio", Word: word}, &out); err != nil {
		return panel.AudioOutcome{}, err
	}
	if out.Attempts == nil {
		out.Attempts = []string{}
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, msg message, into any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("bridge: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bridge: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bridge: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("bridge: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return fmt.Errorf("bridge: status %d: %s", resp.StatusCode, e.Error)
		}
		return fmt.Errorf("bridge: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("bridge: decode response: %w", err)
	}
	return nil
}
