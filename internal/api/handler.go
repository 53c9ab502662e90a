// Package api provides HTTP handlers for the coachflow API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/avelis/coachflow/internal/bridge"
)

// maxRequestBodySize is the maximum allowed request body size (1MB).
const maxRequestBodySize = 1 << 20

// Handler serves the chat and workflow routes.
type Handler struct {
	bridge *bridge.Client
}

// NewHandler creates a Handler backed by the given webhook client.
func NewHandler(b *bridge.Client) *Handler {
	return &Handler{bridge: b}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
