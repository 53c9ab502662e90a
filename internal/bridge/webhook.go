// Package bridge forwards chat and workflow requests to the external
// workflow webhook and converts its bulk NDJSON replies into discrete
// fragments. The bridge is stateless: one upstream call per request, no
// shared mutable state.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when the webhook base URL or workflow ID is
// missing. This is an operator problem, not a caller problem.
var ErrNotConfigured = errors.New("workflow webhook not configured")

// ErrUpstreamTimeout is returned when the workflow does not answer within
// the chat timeout.
var ErrUpstreamTimeout = errors.New("upstream request timed out")

// UpstreamError reports a non-2xx response from the workflow webhook.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("workflow error: %d", e.Status)
}

// chatTimeout bounds a single chat exchange with the workflow.
const chatTimeout = 60 * time.Second

// workflowTimeout bounds a generic workflow invocation.
const workflowTimeout = 30 * time.Second

// chatPayload is the chat-trigger request format the workflow expects.
type chatPayload struct {
	Action    string `json:"action"`
	SessionID string `json:"sessionId"`
	ChatInput string `json:"chatInput"`
}

// Client calls the configured workflow webhook.
type Client struct {
	baseURL    string
	workflowID string
	http       *http.Client
}

// NewClient builds a webhook client. Empty baseURL or workflowID is allowed;
// calls will fail with ErrNotConfigured so the condition surfaces per
// request rather than at boot.
func NewClient(baseURL, workflowID string) *Client {
	return &Client{
		baseURL:    baseURL,
		workflowID: workflowID,
		http:       &http.Client{},
	}
}

// Configured reports whether both the base URL and workflow ID are set.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.workflowID != ""
}

func (c *Client) webhookURL() string {
	return c.baseURL + "/" + c.workflowID
}

// SendChatMessage posts one chat message to the workflow and returns the raw
// NDJSON response body. The call is bounded by the chat timeout; an elapsed
// deadline maps to ErrUpstreamTimeout.
func (c *Client) SendChatMessage(ctx context.Context, sessionID, message string) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(chatPayload{
		Action:    "sendMessage",
		SessionID: sessionID,
		ChatInput: message,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	body, err := c.post(ctx, c.webhookURL(), payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrUpstreamTimeout
		}
		return nil, err
	}
	return body, nil
}

// WorkflowResult is the standard workflow response envelope. Responses that
// do not carry the envelope are wrapped as successful data.
type WorkflowResult struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// CallWorkflow forwards an arbitrary payload to the webhook and normalizes
// the response into a WorkflowResult.
func (c *Client) CallWorkflow(ctx context.Context, payload []byte) (*WorkflowResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	body, err := c.post(ctx, c.webhookURL(), payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrUpstreamTimeout
		}
		return nil, err
	}

	// Responses already shaped as the envelope pass through; anything else
	// is treated as bare successful data.
	var env struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil {
		return &WorkflowResult{
			Success: *env.Success,
			Data:    env.Data,
			Error:   env.Error,
			Message: env.Message,
		}, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode workflow response: invalid JSON")
	}
	return &WorkflowResult{Success: true, Data: body}, nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call webhook: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
