package engine

import "github.com/kalambet/buddyd/internal/emotion"

// Canned replies keyed by detected emotion, used when the provider is
// unreachable or errors out mid-request.
var fallbackResponses = map[string][]string{
	emotion.Sadness: {
		"I understand you're feeling sad. I'm here to listen and support you.",
		"It's okay to feel sad sometimes. Would you like to talk about what's bothering you?",
		"I can sense you're going through a difficult time. How can I help?",
	},
	emotion.Joy: {
		"I'm so glad to hear you're feeling happy! What's bringing you joy today?",
		"Your positive energy is wonderful! Tell me more about what's making you smile.",
		"It's great that you're feeling good! I'd love to hear what's going well for you.",
	},
	emotion.Anger: {
		"I can tell you're frustrated. Take a deep breath. I'm here to help.",
		"It sounds like you're dealing with something difficult. Want to talk it through?",
		"I understand you're upset. Sometimes it helps to express what's bothering you.",
	},
	emotion.Fear: {
		"It's natural to feel scared sometimes. You're safe here with me.",
		"I can sense your worry. What's making you feel anxious?",
		"Fear can be overwhelming. Let's work through this together.",
	},
}

var fallbackNeutral = []string{
	"I'm here to chat with you. What's on your mind?",
	"How are you feeling today? I'd love to hear from you.",
	"Thanks for sharing with me. Tell me more!",
}

// fallback picks a canned reply matching the user's emotional state.
func (e *Engine) fallback(detected string) string {
	responses, ok := fallbackResponses[detected]
	if !ok {
		responses = fallbackNeutral
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return responses[e.rng.Intn(len(responses))]
}
