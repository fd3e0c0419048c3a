// Package provider abstracts the language model backends that generate
// free-form conversational replies. Local topic handlers cover math, support,
// decisions, trivia and knowledge; everything else lands here.
package provider

import "context"

// Message is a single chat turn sent to a model backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider generates replies from a model backend.
type Provider interface {
	// Name identifies the backend in logs and status reports.
	Name() string

	// Chat sends the conversation and returns the complete assistant reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatStream sends the conversation and invokes emit for each token as
	// it arrives. A non-nil error from emit aborts the stream.
	ChatStream(ctx context.Context, messages []Message, emit func(token string) error) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
