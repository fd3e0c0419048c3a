// Package emotion implements a lightweight keyword-based emotion and
// sentiment estimator. It is deliberately low-precision: the point is a
// stable, deterministic signal the rest of the system can key off, not
// real NLP.
package emotion

import "strings"

// Reading is the result of classifying a single message.
type Reading struct {
	Emotion    string             `json:"emotion"`
	Sentiment  float64            `json:"sentiment"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores,omitempty"`
}

// Emotion labels produced by Classify.
const (
	Joy      = "joy"
	Sadness  = "sadness"
	Anger    = "anger"
	Fear     = "fear"
	Surprise = "surprise"
	Neutral  = "neutral"
)

// keyword tables. Joy/sadness/anger/fear hits weigh 2, surprise hits weigh 1.
var (
	joyWords = []string{
		"happy", "joy", "great", "awesome", "wonderful", "amazing", "excited",
		"fantastic", "excellent", "brilliant", "love", "perfect", "thrilled",
		"delighted", "cheerful", "optimistic", "pleased", "glad", "ecstatic",
		"euphoric", "elated", "blissful", "overjoyed",
	}
	sadnessWords = []string{
		"sad", "depressed", "down", "upset", "crying", "tears", "miserable",
		"heartbroken", "disappointed", "gloomy", "melancholy", "sorrow",
		"grief", "despair", "blue", "lonely", "devastated", "crushed",
	}
	angerWords = []string{
		"angry", "mad", "furious", "annoyed", "frustrated", "irritated",
		"rage", "outraged", "livid", "pissed", "infuriated", "agitated",
		"hostile", "resentful", "bitter",
	}
	fearWords = []string{
		"scared", "afraid", "worried", "anxious", "nervous", "panic",
		"terrified", "frightened", "stress", "stressed", "overwhelmed",
		"tense", "paranoid", "apprehensive", "uneasy",
	}
	surpriseWords = []string{
		"surprised", "shocked", "amazed", "astonished", "stunned",
		"wow", "incredible", "unbelievable", "mind-blown",
	}

	// Secondary polarity lexicon used only when no emotion keyword hit.
	positiveIndicators = []string{"good", "nice", "okay", "fine", "well", "thanks", "please"}
	negativeIndicators = []string{"bad", "not", "no", "never", "hate", "problem", "issue", "wrong"}
)

const (
	maxSentiment      = 0.8
	tieBreakSentiment = 0.3
	maxConfidence     = 0.95
	defaultConfidence = 0.5
)

// Classify analyses the text and returns an emotion reading. It is a pure
// function: the same input always yields the same Reading.
func Classify(text string) Reading {
	lower := strings.ToLower(text)

	scores := map[string]float64{
		Joy:      score(lower, joyWords, 2),
		Sadness:  score(lower, sadnessWords, 2),
		Anger:    score(lower, angerWords, 2),
		Fear:     score(lower, fearWords, 2),
		Surprise: score(lower, surpriseWords, 1),
	}

	winner, top := Neutral, 0.0
	for _, label := range []string{Joy, Sadness, Anger, Fear, Surprise} {
		if scores[label] > top {
			winner, top = label, scores[label]
		} else if scores[label] == top && top > 0 && winner != Neutral && label != winner {
			// Strict maximum required; a tie between distinct emotions
			// resolves to neutral.
			winner = Neutral
		}
	}
	if top == 0 {
		winner = Neutral
	}

	positive := scores[Joy] + scores[Surprise]
	negative := scores[Sadness] + scores[Anger] + scores[Fear]

	var sentiment float64
	switch {
	case positive > negative:
		sentiment = min(maxSentiment, positive/10)
	case negative > positive:
		sentiment = -min(maxSentiment, negative/10)
	default:
		pos := hits(lower, positiveIndicators)
		neg := hits(lower, negativeIndicators)
		switch {
		case pos > neg:
			sentiment = tieBreakSentiment
		case neg > pos:
			sentiment = -tieBreakSentiment
		}
	}

	confidence := defaultConfidence
	if top > 0 {
		confidence = min(maxConfidence, top/5)
	}

	return Reading{
		Emotion:    winner,
		Sentiment:  sentiment,
		Confidence: confidence,
		Scores:     scores,
	}
}

func score(lower string, words []string, weight float64) float64 {
	var s float64
	for _, w := range words {
		if strings.Contains(lower, w) {
			s += weight
		}
	}
	return s
}

func hits(lower string, words []string) int {
	var n int
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
