package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pendingMock struct {
	n int
}

func (m *pendingMock) Pending() int { return m.n }

type dictSettingsMock struct {
	provider string
	key      string
}

func (m *dictSettingsMock) DictionaryProvider() string { return m.provider }
func (m *dictSettingsMock) DictionaryAPIKey() string   { return m.key }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pendingMock{}, &dictSettingsMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestHealth_AllOK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pendingMock{n: 3}, &dictSettingsMock{provider: "yandex", key: "dict.1.1"}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Version != "v1.0.0" {
		t.Errorf("expected version 'v1.0.0', got %q", resp.Version)
	}
	if got := resp.Components["coalescer"].Detail; got != "pending=3" {
		t.Errorf("expected coalescer detail 'pending=3', got %q", got)
	}
	if got := resp.Components["dictionary"].Status; got != "ok" {
		t.Errorf("expected dictionary status 'ok', got %q", got)
	}
}

func TestHealth_MissingDictionaryKey(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pendingMock{}, &dictSettingsMock{provider: "yandex"}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "degraded" {
		t.Errorf("expected status 'degraded', got %q", resp.Status)
	}
	dict, ok := resp.Components["dictionary"]
	if !ok {
		t.Fatal("expected 'dictionary' component in response")
	}
	if dict.Status != "not_configured" {
		t.Errorf("expected dictionary status 'not_configured', got %q", dict.Status)
	}
}

func TestHealth_KeylessDictionary(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&pendingMock{}, &dictSettingsMock{provider: "freedict"}, "v1.0.0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if got := resp.Components["dictionary"].Detail; got != "freedict" {
		t.Errorf("expected dictionary detail 'freedict', got %q", got)
	}
}
