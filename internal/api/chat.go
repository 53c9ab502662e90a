package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/avelis/coachflow/internal/bridge"
)

// chatRequest is the POST /api/chat body.
type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// doneSentinel terminates every successful chat stream.
const doneSentinel = "[DONE]"

// HandleChat handles POST /api/chat: it forwards the message to the workflow
// webhook, then re-emits the bulk NDJSON reply as an SSE stream of chunk
// events terminated by the [DONE] sentinel.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.Message == "" {
		Error(w, http.StatusBadRequest, "Missing sessionId or message")
		return
	}

	slog.Info("Chat request",
		"session_id", req.SessionID,
		"message_length", len(req.Message),
	)

	body, err := h.bridge.SendChatMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	fragments := bridge.ExtractFragments(body)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		Error(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	for _, frag := range fragments {
		data, err := json.Marshal(map[string]string{"chunk": frag})
		if err != nil {
			slog.Warn("Failed to marshal chunk", "error", err)
			continue
		}
		if err := writeData(w, string(data)); err != nil {
			slog.Warn("Failed to write SSE chunk", "error", err)
			return
		}
		flusher.Flush()
	}

	if err := writeData(w, doneSentinel); err != nil {
		slog.Warn("Failed to write SSE terminator", "error", err)
		return
	}
	flusher.Flush()

	slog.Info("Chat stream complete", "session_id", req.SessionID, "fragments", len(fragments))
}

func (h *Handler) writeChatError(w http.ResponseWriter, err error) {
	var upstream *bridge.UpstreamError

	switch {
	case errors.Is(err, bridge.ErrNotConfigured):
		slog.Error("Chat request rejected", "error", err)
		Error(w, http.StatusInternalServerError, "Webhook not configured")

	case errors.Is(err, bridge.ErrUpstreamTimeout):
		slog.Error("Workflow timed out")
		Error(w, http.StatusGatewayTimeout, "Request timeout - the coach is taking too long to respond")

	case errors.As(err, &upstream):
		slog.Error("Workflow returned an error", "status", upstream.Status, "body", upstream.Body)
		Error(w, upstream.Status, fmt.Sprintf("Workflow error: %d", upstream.Status))

	default:
		slog.Error("Chat request failed", "error", err)
		Error(w, http.StatusInternalServerError, "failed to contact workflow")
	}
}

// writeData emits one SSE data line.
func writeData(w io.Writer, data string) error {
	_, err := fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
