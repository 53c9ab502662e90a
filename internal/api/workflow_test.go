//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postWorkflow(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/workflow", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/workflow: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestWorkflowForwardsBodyVerbatim(t *testing.T) {
	var upstreamBody string
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		upstreamBody = string(b)
		io.WriteString(w, `{"result":"done"}`)
	})

	resp := postWorkflow(t, srv, `{"custom":"payload","n":3}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if upstreamBody != `{"custom":"payload","n":3}` {
		t.Errorf("upstream body = %q, want verbatim forward", upstreamBody)
	}

	var res struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || string(res.Data) != `{"result":"done"}` {
		t.Errorf("response = %+v", res)
	}
}

func TestWorkflowEnvelopePassthrough(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[1,2,3]}`)
	})

	resp := postWorkflow(t, srv, `{}`)
	var res struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || string(res.Data) != `[1,2,3]` {
		t.Errorf("response = %+v", res)
	}
}

func TestWorkflowUpstreamFailure(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "exploded", http.StatusInternalServerError)
	})

	resp := postWorkflow(t, srv, `{}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error body missing error field")
	}
}

func TestWorkflowNotConfigured(t *testing.T) {
	srv := newChatServer(t, nil)
	resp := postWorkflow(t, srv, `{}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestWorkflowRejectsInvalidJSON(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for malformed bodies")
	})
	resp := postWorkflow(t, srv, `{{{`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
