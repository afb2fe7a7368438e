package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// pendingCounter reports in-flight coalesced lookups.
type pendingCounter interface {
	Pending() int
}

// dictionarySettings reports which dictionary is selected and whether it has a key.
type dictionarySettings interface {
	DictionaryProvider() string
	DictionaryAPIKey() string
}

// keylessDictionaries need no API key to answer.
var keylessDictionaries = map[string]bool{"freedict": true}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	lookups  pendingCounter
	settings dictionarySettings
	version  string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(lookups pendingCounter, settings dictionarySettings, version string) *HealthHandler {
	return &HealthHandler{lookups: lookups, settings: settings, version: version}
}

// HealthResponse is the JSON response for /live and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the version, coalescer load and dictionary configuration.
// A dictionary without its API key degrades the status but stays 200:
// translation keeps working and dictionary data is simply absent.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]CompStatus{
		"coalescer": {Status: "ok", Detail: "pending=" + strconv.Itoa(h.lookups.Pending())},
	}
	overall := "ok"

	provider := h.settings.DictionaryProvider()
	if keylessDictionaries[provider] || h.settings.DictionaryAPIKey() != "" {
		components["dictionary"] = CompStatus{Status: "ok", Detail: provider}
	} else {
		components["dictionary"] = CompStatus{Status: "not_configured", Detail: provider + ": missing api key"}
		overall = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
