package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

func TestChatRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /api/chat": `{"interaction_id":"i-1","response":"hello!","topic":"general","emotion":"neutral","sentiment":0.0}`,
	})

	client := ts.client()
	resp, err := client.post(ctx, "/api/chat", map[string]any{
		"user_id": "alice",
		"message": "hi there",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var reply struct {
		Response string `json:"response"`
		Topic    string `json:"topic"`
	}
	if err := decodeJSON(resp, &reply); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if reply.Response != "hello!" || reply.Topic != "general" {
		t.Errorf("reply = %+v", reply)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Method != "POST" || r.Path != "/api/chat" {
		t.Errorf("request = %s %s", r.Method, r.Path)
	}
	if r.Auth != "Bearer test-token" {
		t.Errorf("auth = %q", r.Auth)
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if body["user_id"] != "alice" || body["message"] != "hi there" {
		t.Errorf("body = %v", body)
	}
}

func TestChatCommand_MissingArgs(t *testing.T) {
	defer chatCmd.SetArgs(nil)

	chatCmd.SetArgs([]string{})
	err := chatCmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing message")
	}
}

func TestMemoryShowRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /api/memory/alice": `{"user_id":"alice","name":"Alice","total_messages":5}`,
	})

	client := ts.client()
	resp, err := client.get(ctx, "/api/memory/alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var summary map[string]any
	if err := decodeJSON(resp, &summary); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if summary["name"] != "Alice" {
		t.Errorf("name = %v", summary["name"])
	}
}

func TestMemoryEraseRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"DELETE /api/memory/alice": `{"status":"erased","user_id":"alice"}`,
	})

	client := ts.client()
	resp, err := client.delete(ctx, "/api/memory/alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if result["status"] != "erased" {
		t.Errorf("status = %q", result["status"])
	}
	if ts.requests[0].Method != "DELETE" {
		t.Errorf("method = %q", ts.requests[0].Method)
	}
}

func TestDecodeJSONErrorBody(t *testing.T) {
	ts := newTestServer(t, nil)

	client := ts.client()
	resp, err := client.get(ctx, "/api/memory/unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]any
	err = decodeJSON(resp, &out)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v", err)
	}
}

func TestClientOmitsAuthWithoutToken(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /api/health": `{"status":"healthy"}`,
	})

	client := ts.client()
	client.token = ""
	if _, err := client.get(ctx, "/api/health"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auth := ts.requests[0].Auth; auth != "" {
		t.Errorf("auth = %q, want none", auth)
	}
}
