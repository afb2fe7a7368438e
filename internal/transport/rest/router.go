package rest

import "net/http"

// NewRouter mounts the message and health endpoints.
func NewRouter(messages *MessageHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/message", messages.Handle)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /health", health.Health)
	return mux
}
