package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

// Prober checks audio URLs with a one-byte ranged GET.
type Prober struct {
	httpClient *http.Client
	log        *slog.Logger
}

// NewProber creates a Prober. A zero timeout leaves probes bounded only by ctx.
func NewProber(timeout time.Duration, logger *slog.Logger) *Prober {
	return &Prober{
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "audio"),
	}
}

// Probe succeeds when rawURL answers 200 or 206 with an audio or binary content type.
func (p *Prober) Probe(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("audio: create request: %w", err)
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("audio: request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return fmt.Errorf("audio: unexpected status %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if !playable(ct) {
		return fmt.Errorf("audio: unexpected content type %q", ct)
	}

	p.log.DebugContext(ctx, "audio probe ok", slog.String("url", rawURL), slog.String("content_type", ct))
	return nil
}

func playable(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "audio/") || mt == "application/octet-stream"
}
