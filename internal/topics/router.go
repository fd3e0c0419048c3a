// Package topics classifies inbound messages into coarse categories and
// provides the deterministic handlers behind them. Handlers are pure
// functions of (message, emotion reading, profile); nothing in this package
// mutates state.
package topics

import "strings"

// Topic is the coarse category a message routes into.
type Topic string

const (
	TopicMath      Topic = "math"
	TopicEmotional Topic = "emotional"
	TopicDecision  Topic = "decision"
	TopicRandom    Topic = "random"
	TopicKnowledge Topic = "knowledge"
	TopicTech      Topic = "tech"
	TopicGeneral   Topic = "general"
)

// HandledLocally reports whether a deterministic handler claims the topic.
// Tech and general fall through to the generative provider.
func (t Topic) HandledLocally() bool {
	switch t {
	case TopicMath, TopicEmotional, TopicDecision, TopicRandom, TopicKnowledge:
		return true
	}
	return false
}

var mathOperators = []string{"+", "-", "*", "/", "=", "^", "%"}

var mathWords = []string{
	"solve", "calculate", "equation", "integral", "derivative", "math",
	"multiply", "divide", "add", "subtract",
}

var emotionalWords = []string{
	"feel", "emotion", "sad", "happy", "angry", "worried", "anxious",
	"depressed", "lonely", "excited", "scared", "frustrated",
}

var decisionWords = []string{
	"should i", "what if", "decide", "choice", "option", "help me choose", "which one",
}

var randomWords = []string{
	"joke", "fun", "random", "interesting", "tell me about", "story", "fact",
}

var knowledgeWords = []string{
	"what is", "who is", "how does", "why", "explain", "definition", "meaning",
}

var techWords = []string{
	"code", "programming", "python", "javascript", "html", "css", "algorithm", "function",
}

// Classify returns the message's topic. Evaluation is ordered and
// first-match-wins; the order is part of the contract (math outranks
// emotional, and so on down to the general default).
func Classify(message string) Topic {
	lower := strings.ToLower(message)

	if containsAny(message, mathOperators) || containsAny(lower, mathWords) {
		return TopicMath
	}
	if containsAny(lower, emotionalWords) {
		return TopicEmotional
	}
	if containsAny(lower, decisionWords) {
		return TopicDecision
	}
	if containsAny(lower, randomWords) {
		return TopicRandom
	}
	if containsAny(lower, knowledgeWords) {
		return TopicKnowledge
	}
	if containsAny(lower, techWords) {
		return TopicTech
	}
	return TopicGeneral
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
