package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaChat(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"hi from ollama"},"done":true}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "custom-model")
	got, err := o.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hi from ollama" {
		t.Errorf("Chat = %q", got)
	}
	if gotReq.Model != "custom-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("stream should be off for Chat")
	}
}

func TestOllamaDefaultModel(t *testing.T) {
	o := NewOllama("http://localhost:11434", "")
	if o.model != ollamaDefaultModel {
		t.Errorf("model = %q, want %q", o.model, ollamaDefaultModel)
	}
}

func TestOllamaChatStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if !req.Stream {
			t.Error("stream should be on for ChatStream")
		}
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"one "},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"two"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "")
	var tokens []string
	err := o.ChatStream(context.Background(), nil, func(tok string) error {
		tokens = append(tokens, tok)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(tokens, "") != "one two" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestOllamaChatStreamStopsAtDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"message":{"content":"a"},"done":true}`)
		fmt.Fprintln(w, `{"message":{"content":"never seen"},"done":false}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "")
	var tokens []string
	err := o.ChatStream(context.Background(), nil, func(tok string) error {
		tokens = append(tokens, tok)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 || tokens[0] != "a" {
		t.Errorf("tokens = %v, want just the pre-done fragment", tokens)
	}
}

func TestOllamaChatErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "")
	if _, err := o.Chat(context.Background(), nil); err == nil {
		t.Error("expected error for 404")
	}
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"models":[]}`)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "")
	if err := o.Ping(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	srv.Close()
	if err := o.Ping(context.Background()); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestOllamaName(t *testing.T) {
	if got := NewOllama("http://localhost:11434", "").Name(); got != "ollama" {
		t.Errorf("Name = %q", got)
	}
}
