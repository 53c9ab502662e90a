package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// recorder collects handler invocations for assertions.
type recorder struct {
	mu        sync.Mutex
	chunks    []string
	completes int
	errors    []string
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		OnChunk: func(chunk string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.chunks = append(r.chunks, chunk)
		},
		OnComplete: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes++
		},
		OnError: func(message string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errors = append(r.errors, message)
		},
	}
}

func (r *recorder) snapshot() ([]string, int, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.chunks...), r.completes, append([]string(nil), r.errors...)
}

func TestSendConsumesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SessionID != "sess" || req.Message != "hello" {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"chunk\":\"Hi\"}\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())
	c.Send(context.Background(), "sess", "hello")

	chunks, completes, errs := rec.snapshot()
	if len(chunks) != 1 || chunks[0] != "Hi" {
		t.Errorf("chunks = %v, want [Hi]", chunks)
	}
	if completes != 1 {
		t.Errorf("completes = %d, want 1", completes)
	}
	if len(errs) != 0 {
		t.Errorf("errors = %v, want none", errs)
	}
}

func TestSendReassemblesSplitMultibyte(t *testing.T) {
	// The é in the payload is flushed one byte at a time.
	payload := []byte("data: {\"chunk\":\"caf\xc3\xa9\"}\n\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for _, b := range payload {
			w.Write([]byte{b})
			flusher.Flush()
		}
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())
	c.Send(context.Background(), "s", "m")

	chunks, completes, errs := rec.snapshot()
	if len(chunks) != 1 || chunks[0] != "café" {
		t.Errorf("chunks = %q, want [café]", chunks)
	}
	if completes != 1 || len(errs) != 0 {
		t.Errorf("completes = %d, errors = %v", completes, errs)
	}
}

func TestSendFlushesTrailingLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No trailing newline: the final buffered line must still parse.
		io.WriteString(w, "data: {\"chunk\":\"tail\"}")
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())
	c.Send(context.Background(), "s", "m")

	chunks, completes, _ := rec.snapshot()
	if len(chunks) != 1 || chunks[0] != "tail" {
		t.Errorf("chunks = %v, want [tail]", chunks)
	}
	if completes != 1 {
		t.Errorf("completes = %d, want 1", completes)
	}
}

func TestSendErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGatewayTimeout)
		io.WriteString(w, `{"error":"the coach is taking too long to respond"}`)
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())
	c.Send(context.Background(), "s", "m")

	chunks, completes, errs := rec.snapshot()
	if len(chunks) != 0 || completes != 0 {
		t.Errorf("chunks = %v, completes = %d", chunks, completes)
	}
	if len(errs) != 1 || errs[0] != "the coach is taking too long to respond" {
		t.Errorf("errors = %v", errs)
	}
}

func TestSendConnectionFailure(t *testing.T) {
	rec := &recorder{}
	// Nothing listens here.
	c := NewConsumer("http://127.0.0.1:1", rec.handlers())
	c.Send(context.Background(), "s", "m")

	_, completes, errs := rec.snapshot()
	if completes != 0 {
		t.Errorf("completes = %d, want 0", completes)
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one", errs)
	}
}

func TestCancelMidStreamIsSilent(t *testing.T) {
	firstChunkSent := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		io.WriteString(w, "data: {\"chunk\":\"partial\"}\n\n")
		flusher.Flush()
		close(firstChunkSent)
		<-r.Context().Done()
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())

	done := make(chan struct{})
	go func() {
		c.Send(context.Background(), "s", "m")
		close(done)
	}()

	<-firstChunkSent
	c.Cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Send did not return after Cancel")
	}

	chunks, completes, errs := rec.snapshot()
	if len(chunks) != 1 {
		t.Errorf("chunks = %v, want the one pre-cancel fragment", chunks)
	}
	if completes != 0 {
		t.Error("a cancelled send must not signal completion")
	}
	if len(errs) != 0 {
		t.Errorf("a cancelled send must not signal an error, got %v", errs)
	}
}

func TestNewSendCancelsPrevious(t *testing.T) {
	firstStarted := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		switch req.Message {
		case "first":
			w.(http.Flusher).Flush()
			close(firstStarted)
			<-r.Context().Done()
		case "second":
			io.WriteString(w, "data: {\"chunk\":\"two\"}\n\ndata: [DONE]\n\n")
		}
	}))
	defer srv.Close()

	rec := &recorder{}
	c := NewConsumer(srv.URL, rec.handlers())

	firstDone := make(chan struct{})
	go func() {
		c.Send(context.Background(), "s", "first")
		close(firstDone)
	}()
	<-firstStarted

	c.Send(context.Background(), "s", "second")

	select {
	case <-firstDone:
	case <-time.After(5 * time.Second):
		t.Fatal("first send did not return after being superseded")
	}

	chunks, completes, errs := rec.snapshot()
	if len(chunks) != 1 || chunks[0] != "two" {
		t.Errorf("chunks = %v, want [two]", chunks)
	}
	if completes != 1 {
		t.Errorf("completes = %d, want 1 (second send only)", completes)
	}
	if len(errs) != 0 {
		t.Errorf("errors = %v, want none: superseded sends are silent", errs)
	}
}
