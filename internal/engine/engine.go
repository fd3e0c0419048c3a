// Package engine orchestrates a conversation turn: emotion analysis, profile
// learning, topic routing, and reply generation through either a local
// handler or a model provider.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/buddyd/internal/emotion"
	"github.com/kalambet/buddyd/internal/profile"
	"github.com/kalambet/buddyd/internal/provider"
	"github.com/kalambet/buddyd/internal/ratelimit"
	"github.com/kalambet/buddyd/internal/storage"
	"github.com/kalambet/buddyd/internal/topics"
)

const (
	// historyCap bounds the in-memory exchanges kept per user.
	historyCap = 20
	// historyReplay is how many recent exchanges are sent to the provider.
	historyReplay = 10
)

// ErrEmptyMessage is returned when a message contains no content after trimming.
var ErrEmptyMessage = errors.New("message is empty")

// RateLimitError is returned when the provider request budget is exhausted.
type RateLimitError struct {
	Wait time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %.1f seconds", e.Wait.Seconds())
}

// Reply is the engine's answer to a single user message.
type Reply struct {
	InteractionID string
	Response      string
	Topic         topics.Topic
	Emotion       string
	Sentiment     float64
	Confidence    float64
	Degraded      bool
}

// InteractionLog persists the record of each completed turn.
type InteractionLog interface {
	SaveInteraction(storage.Interaction) error
}

// exchange is one completed user/assistant turn.
type exchange struct {
	User      string
	Assistant string
}

// Engine ties the analysis pipeline and reply generation together.
type Engine struct {
	profiles *profile.Store
	provider provider.Provider
	limiter  *ratelimit.SlidingWindow
	log      InteractionLog
	logger   *slog.Logger

	// rngMu guards rng; rand.Rand is not safe for concurrent use and
	// requests reach the sampling handlers without holding mu.
	rngMu sync.Mutex
	rng   *rand.Rand

	mu      sync.Mutex
	history map[string][]exchange
}

// New creates an Engine. log may be nil to disable interaction persistence.
func New(profiles *profile.Store, p provider.Provider, limiter *ratelimit.SlidingWindow, log InteractionLog, logger *slog.Logger) *Engine {
	return &Engine{
		profiles: profiles,
		provider: p,
		limiter:  limiter,
		log:      log,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		history:  make(map[string][]exchange),
	}
}

// Respond runs the full pipeline for a message and returns the complete reply.
func (e *Engine) Respond(ctx context.Context, userID, message string) (Reply, error) {
	turn, err := e.analyze(userID, message)
	if err != nil {
		return Reply{}, err
	}

	if turn.topic.HandledLocally() {
		turn.response = e.handleLocally(turn)
	} else {
		if err := e.reserveProvider(); err != nil {
			return Reply{}, err
		}
		resp, err := e.provider.Chat(ctx, e.buildMessages(turn))
		if err != nil {
			e.logger.Warn("provider call failed, using fallback",
				"provider", e.provider.Name(), "user_id", userID, "error", err)
			resp = e.fallback(turn.reading.Emotion)
		}
		turn.response = resp
	}

	return e.finish(turn), nil
}

// RespondStream runs the pipeline and delivers the reply through emit. Local
// handler replies arrive as a single token; provider replies stream as they
// are generated. The returned Reply carries the full accumulated response.
func (e *Engine) RespondStream(ctx context.Context, userID, message string, emit func(token string) error) (Reply, error) {
	turn, err := e.analyze(userID, message)
	if err != nil {
		return Reply{}, err
	}

	if turn.topic.HandledLocally() {
		turn.response = e.handleLocally(turn)
		if err := emit(turn.response); err != nil {
			return Reply{}, err
		}
		return e.finish(turn), nil
	}

	if err := e.reserveProvider(); err != nil {
		return Reply{}, err
	}

	var full strings.Builder
	err = e.provider.ChatStream(ctx, e.buildMessages(turn), func(token string) error {
		full.WriteString(token)
		return emit(token)
	})
	if err != nil {
		if full.Len() > 0 {
			// Partial stream already delivered; keep what the user saw.
			turn.response = full.String()
			return e.finish(turn), nil
		}
		e.logger.Warn("provider stream failed, using fallback",
			"provider", e.provider.Name(), "user_id", userID, "error", err)
		turn.response = e.fallback(turn.reading.Emotion)
		if err := emit(turn.response); err != nil {
			return Reply{}, err
		}
		return e.finish(turn), nil
	}

	turn.response = full.String()
	return e.finish(turn), nil
}

// turnState carries intermediate results through a conversation turn.
type turnState struct {
	userID   string
	message  string
	reading  emotion.Reading
	prof     profile.Profile
	topic    topics.Topic
	response string
	degraded bool
}

// analyze validates the message, classifies emotion and topic, and folds the
// message into the user's profile.
func (e *Engine) analyze(userID, message string) (*turnState, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	reading := emotion.Classify(message)

	prof, err := e.profiles.Update(userID, message, reading)
	degraded := false
	if err != nil {
		var de *profile.DegradedError
		if !errors.As(err, &de) {
			return nil, fmt.Errorf("updating profile: %w", err)
		}
		// The in-memory profile advanced even though persistence failed.
		e.logger.Warn("profile persistence degraded", "user_id", userID, "error", err)
		degraded = true
	}

	return &turnState{
		userID:   userID,
		message:  message,
		reading:  reading,
		prof:     prof,
		topic:    topics.Classify(message),
		degraded: degraded,
	}, nil
}

func (e *Engine) handleLocally(t *turnState) string {
	switch t.topic {
	case topics.TopicMath:
		return topics.SolveMath(t.message)
	case topics.TopicEmotional:
		return topics.ProvideSupport(t.message, t.reading, t.prof)
	case topics.TopicDecision:
		return topics.HelpDecide(t.message, t.prof)
	case topics.TopicRandom:
		e.rngMu.Lock()
		defer e.rngMu.Unlock()
		return topics.FunContent(t.message, e.rng)
	case topics.TopicKnowledge:
		return topics.ProvideKnowledge(t.message)
	}
	return ""
}

// reserveProvider consumes a rate limit slot, or reports the wait time.
func (e *Engine) reserveProvider() error {
	if e.limiter.AllowAndRecord() {
		return nil
	}
	return &RateLimitError{Wait: e.limiter.WaitTime()}
}

const systemPrompt = `You are Buddy, a warm, empathetic AI companion designed to provide emotional support and engaging conversation.

Key traits:
- Be genuinely caring and supportive
- Match the user's emotional tone appropriately
- Provide helpful advice when asked
- Keep responses conversational and natural
- Show genuine interest in the user's wellbeing
- Be encouraging and positive while being realistic

Remember to:
- Listen actively to what the user is sharing
- Acknowledge their emotions
- Provide thoughtful, personalized responses
- Ask follow-up questions when appropriate`

// buildMessages assembles the provider conversation: system guidance, emotion
// and profile context, recent history, then the current message.
func (e *Engine) buildMessages(t *turnState) []provider.Message {
	msgs := []provider.Message{{Role: provider.RoleSystem, Content: systemPrompt}}

	if t.reading.Emotion != emotion.Neutral {
		msgs = append(msgs, provider.Message{
			Role:    provider.RoleSystem,
			Content: fmt.Sprintf("User's current emotional state: %s. Please respond with appropriate empathy and support.", t.reading.Emotion),
		})
	}

	if pc := t.prof.PromptContext(); pc != "" {
		msgs = append(msgs, provider.Message{Role: provider.RoleSystem, Content: pc})
	}

	e.mu.Lock()
	hist := e.history[t.userID]
	if len(hist) > historyReplay {
		hist = hist[len(hist)-historyReplay:]
	}
	for _, ex := range hist {
		msgs = append(msgs,
			provider.Message{Role: provider.RoleUser, Content: ex.User},
			provider.Message{Role: provider.RoleAssistant, Content: ex.Assistant},
		)
	}
	e.mu.Unlock()

	return append(msgs, provider.Message{Role: provider.RoleUser, Content: t.message})
}

// finish records the exchange in short-term history, persists the interaction
// record, and assembles the Reply.
func (e *Engine) finish(t *turnState) Reply {
	e.mu.Lock()
	hist := append(e.history[t.userID], exchange{User: t.message, Assistant: t.response})
	if len(hist) > historyCap {
		hist = hist[len(hist)-historyCap:]
	}
	e.history[t.userID] = hist
	e.mu.Unlock()

	id := uuid.NewString()
	if e.log != nil {
		err := e.log.SaveInteraction(storage.Interaction{
			ID:        id,
			UserID:    t.userID,
			CreatedAt: time.Now().UTC(),
			Message:   t.message,
			Response:  t.response,
			Topic:     string(t.topic),
			Emotion:   t.reading.Emotion,
			Sentiment: t.reading.Sentiment,
		})
		if err != nil {
			e.logger.Warn("saving interaction failed", "user_id", t.userID, "error", err)
		}
	}

	return Reply{
		InteractionID: id,
		Response:      t.response,
		Topic:         t.topic,
		Emotion:       t.reading.Emotion,
		Sentiment:     t.reading.Sentiment,
		Confidence:    t.reading.Confidence,
		Degraded:      t.degraded,
	}
}

// ClearHistory drops the short-term conversation history for a user.
func (e *Engine) ClearHistory(userID string) {
	e.mu.Lock()
	delete(e.history, userID)
	e.mu.Unlock()
}

// Status summarizes engine health for the status endpoint.
type Status struct {
	Provider      string          `json:"provider"`
	Available     bool            `json:"available"`
	RateLimit     ratelimit.Stats `json:"rate_limit"`
	Conversations int             `json:"conversations"`
}

// Stats reports the provider, rate limiter state, and active conversation count.
func (e *Engine) Stats(ctx context.Context) Status {
	e.mu.Lock()
	conversations := len(e.history)
	e.mu.Unlock()

	return Status{
		Provider:      e.provider.Name(),
		Available:     e.provider.Ping(ctx) == nil,
		RateLimit:     e.limiter.Snapshot(),
		Conversations: conversations,
	}
}
