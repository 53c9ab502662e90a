package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Handlers receives stream events. OnChunk fires once per content fragment,
// then exactly one of OnComplete or OnError fires — or neither, when the
// send was cancelled.
type Handlers struct {
	OnChunk    func(chunk string)
	OnComplete func()
	OnError    func(message string)
}

// Consumer issues chat requests and reads the SSE response incrementally.
// One request is in flight at a time: a new Send cancels the previous one.
type Consumer struct {
	endpoint string
	client   *http.Client
	handlers Handlers

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    int
}

// NewConsumer creates a consumer posting to the given chat endpoint.
func NewConsumer(endpoint string, handlers Handlers) *Consumer {
	return &Consumer{
		endpoint: endpoint,
		client:   &http.Client{},
		handlers: handlers,
	}
}

// sendRequest is the chat request body.
type sendRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Send posts a message and consumes the response stream, invoking the
// handlers as fragments arrive. It blocks until the stream ends, fails, or
// is cancelled; callers that need to keep working run it in a goroutine.
// A cancelled send invokes no completion or error handler.
func (c *Consumer) Send(ctx context.Context, sessionID, message string) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		// Only clear our own cancel; a newer Send may have replaced it.
		if c.gen == gen {
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	err := c.run(ctx, sessionID, message)
	switch {
	case err == nil:
		if c.handlers.OnComplete != nil {
			c.handlers.OnComplete()
		}
	case errors.Is(err, context.Canceled):
		// Cancellation is not an error; stay silent.
	default:
		if c.handlers.OnError != nil {
			c.handlers.OnError(err.Error())
		}
	}
}

// Cancel aborts the in-flight request, if any.
func (c *Consumer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Consumer) run(ctx context.Context, sessionID, message string) error {
	payload, err := json.Marshal(sendRequest{SessionID: sessionID, Message: message})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return context.Canceled
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New(readErrorMessage(resp))
	}

	return c.readStream(ctx, resp.Body)
}

// readStream runs the staged read loop: bytes in, UTF-8 carry, line buffer,
// complete lines out to the parser.
func (c *Consumer) readStream(ctx context.Context, body io.Reader) error {
	var (
		decoder  utf8Decoder
		splitter lineSplitter
		buf      = make([]byte, 4096)
	)

	dispatch := func(line string) {
		if fragment, ok := parseLine(line); ok && c.handlers.OnChunk != nil {
			c.handlers.OnChunk(fragment)
		}
	}

	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, line := range splitter.Split(decoder.Decode(buf[:n])) {
				dispatch(line)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Flush both carries: a final line without a trailing
				// newline still reaches the parser.
				for _, line := range splitter.Split(decoder.Flush()) {
					dispatch(line)
				}
				if rest, ok := splitter.Flush(); ok {
					dispatch(rest)
				}
				return nil
			}
			if ctx.Err() != nil {
				return context.Canceled
			}
			return fmt.Errorf("stream read failed: %w", err)
		}
	}
}

// readErrorMessage extracts a human-readable message from a non-200
// response, preferring the server's error field.
func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}
