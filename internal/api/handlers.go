// Package api exposes the conversation engine over HTTP and MCP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/buddyd/internal/engine"
	"github.com/kalambet/buddyd/internal/profile"
	"github.com/kalambet/buddyd/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Interactions reads the persisted interaction log for the memory endpoints.
type Interactions interface {
	GetInteraction(id string) (storage.Interaction, error)
	GetRecentInteractions(userID string, limit int) ([]storage.Interaction, error)
}

// Deps holds the collaborators behind the HTTP handlers.
type Deps struct {
	Engine       *engine.Engine
	Profiles     *profile.Store
	Interactions Interactions
	AuthToken    string // empty disables auth on management endpoints
}

// NewHandler returns the HTTP router for the conversational API.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/health", handleHealth(deps.Engine))
	r.Post("/api/chat", handleChat(deps.Engine))
	r.Post("/api/chat/stream", handleChatStream(deps.Engine))

	r.Group(func(r chi.Router) {
		if deps.AuthToken != "" {
			r.Use(BearerAuth(deps.AuthToken))
		}
		r.Get("/api/memory/{userID}", handleMemoryGet(deps.Profiles))
		r.Delete("/api/memory/{userID}", handleMemoryDelete(deps.Profiles, deps.Engine))
		r.Get("/api/memory/{userID}/interactions", handleInteractions(deps.Interactions))
		r.Get("/api/memory/{userID}/interactions/{id}", handleInteraction(deps.Interactions))
	})

	return r
}

// chatRequest is the body for both chat endpoints.
type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// chatResponse is the non-streaming chat reply.
type chatResponse struct {
	InteractionID string  `json:"interaction_id"`
	Response      string  `json:"response"`
	Topic         string  `json:"topic"`
	Emotion       string  `json:"emotion"`
	Sentiment     float64 `json:"sentiment"`
	Confidence    float64 `json:"confidence"`
	ResponseTime  float64 `json:"response_time"`
	Timestamp     string  `json:"timestamp"`
	Degraded      bool    `json:"degraded,omitempty"`
}

func decodeChatRequest(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return chatRequest{}, false
	}
	if req.UserID == "" {
		req.UserID = "default"
	}
	return req, true
}

func handleChat(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeChatRequest(w, r)
		if !ok {
			return
		}

		start := time.Now()
		reply, err := e.Respond(r.Context(), req.UserID, req.Message)
		if err != nil {
			writeChatError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse{
			InteractionID: reply.InteractionID,
			Response:      reply.Response,
			Topic:         string(reply.Topic),
			Emotion:       reply.Emotion,
			Sentiment:     reply.Sentiment,
			Confidence:    reply.Confidence,
			ResponseTime:  time.Since(start).Seconds(),
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Degraded:      reply.Degraded,
		})
	}
}

// streamEvent is one SSE data payload of the streaming chat endpoint.
type streamEvent struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
	Done  bool   `json:"done"`
}

func handleChatStream(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeChatRequest(w, r)
		if !ok {
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			httpError(w, http.StatusInternalServerError, "api_error", "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		emit := func(ev streamEvent) error {
			payload, err := json.Marshal(ev)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		}

		_, err := e.RespondStream(r.Context(), req.UserID, req.Message, func(token string) error {
			return emit(streamEvent{Token: token})
		})
		if err != nil {
			var rle *engine.RateLimitError
			switch {
			case errors.As(err, &rle):
				emit(streamEvent{
					Error: fmt.Sprintf("Rate limit exceeded. Try again in %.1f seconds.", rle.Wait.Seconds()),
					Done:  true,
				})
			case errors.Is(err, engine.ErrEmptyMessage):
				emit(streamEvent{Error: "message is empty", Done: true})
			default:
				emit(streamEvent{Error: "internal error", Done: true})
			}
			return
		}

		emit(streamEvent{Done: true})
	}
}

func writeChatError(w http.ResponseWriter, err error) {
	var rle *engine.RateLimitError
	switch {
	case errors.As(err, &rle):
		w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rle.Wait.Seconds()))
		httpError(w, http.StatusTooManyRequests, "rate_limit_error",
			"Rate limit exceeded. Try again in %.1f seconds.", rle.Wait.Seconds())
	case errors.Is(err, engine.ErrEmptyMessage):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required and must not be empty")
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "processing message: %v", err)
	}
}

func handleHealth(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := e.Stats(r.Context())

		status := "healthy"
		if !st.Available {
			status = "unhealthy"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":        status,
			"provider":      st.Provider,
			"connected":     st.Available,
			"rate_limit":    st.RateLimit,
			"conversations": st.Conversations,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func handleMemoryGet(profiles *profile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		summary, err := profiles.Summarize(userID)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading profile: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

func handleMemoryDelete(profiles *profile.Store, e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		if err := profiles.Erase(userID); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "erasing profile: %v", err)
			return
		}
		e.ClearHistory(userID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "erased",
			"user_id": userID,
		})
	}
}

func handleInteractions(log Interactions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if _, err := fmt.Sscanf(raw, "%d", &limit); err != nil || limit <= 0 {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "limit must be a positive integer")
				return
			}
		}
		if limit > 100 {
			limit = 100
		}

		interactions, err := log.GetRecentInteractions(userID, limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "loading interactions: %v", err)
			return
		}
		if interactions == nil {
			interactions = []storage.Interaction{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(interactions)
	}
}

func handleInteraction(log Interactions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		id := chi.URLParam(r, "id")

		interaction, err := log.GetInteraction(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				httpError(w, http.StatusNotFound, "invalid_request_error", "interaction %q not found", id)
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "loading interaction: %v", err)
			return
		}
		// Records are addressed under their owner; do not leak other users'.
		if interaction.UserID != userID {
			httpError(w, http.StatusNotFound, "invalid_request_error", "interaction %q not found", id)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(interaction)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
