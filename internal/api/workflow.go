package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/avelis/coachflow/internal/bridge"
)

// HandleWorkflow handles POST /api/workflow: the body is caller-defined and
// forwarded verbatim to the configured webhook. Input validation beyond
// well-formed JSON is the workflow's responsibility.
func (h *Handler) HandleWorkflow(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		Error(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	res, err := h.bridge.CallWorkflow(r.Context(), body)
	if err != nil {
		if errors.Is(err, bridge.ErrNotConfigured) {
			slog.Error("Workflow request rejected", "error", err)
			Error(w, http.StatusInternalServerError, "Workflow not configured")
			return
		}
		slog.Error("Workflow call failed", "error", err)
		Error(w, http.StatusInternalServerError, "Workflow execution failed")
		return
	}

	if !res.Success {
		message := res.Error
		if message == "" {
			message = "Workflow execution failed"
		}
		Error(w, http.StatusInternalServerError, message)
		return
	}

	JSON(w, http.StatusOK, res)
}
