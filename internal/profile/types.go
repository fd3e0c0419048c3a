// Package profile maintains the durable per-user behavioral profile: how the
// user communicates, what they have told us about themselves, and how their
// mood has trended. Every inbound message feeds the profile; routing and
// prompt assembly read from it.
package profile

import (
	"time"

	"github.com/kalambet/buddyd/internal/emotion"
)

// Capacity bounds for the ring-like buffers in a Profile.
const (
	historyCap        = 100 // conversation turns retained
	emotionHistoryCap = 50  // emotion readings retained
	baselineWindow    = 20  // sentiment readings averaged into the baseline
	factListCap       = 50  // timestamp-keyed fact entries per category
)

// Profile is the full per-user record. It is serialized as JSON per user id;
// unknown fields are ignored on read and missing fields fall back to the
// defaults set by newProfile, so old records stay loadable as the schema
// grows.
type Profile struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Personality Personality           `json:"personality"`
	Patterns    CommunicationPatterns `json:"communication_patterns"`
	Emotional   EmotionalProfile      `json:"emotional_profile"`
	Facts       MemoryFacts           `json:"memory_facts"`
	Decision    DecisionTraits        `json:"decision_making"`
	History     []Turn                `json:"conversation_history"`
	Stats       Statistics            `json:"statistics"`
}

// Personality holds continuous traits, each clamped to [0,1].
type Personality struct {
	Formality       float64 `json:"formality"`        // 0 casual .. 1 formal
	Verbosity       float64 `json:"verbosity"`        // 0 concise .. 1 detailed
	EmojiUsage      float64 `json:"emoji_usage"`      // fraction of emoji characters
	HumorPreference float64 `json:"humor_preference"` // 0 serious .. 1 playful
}

// CommunicationPatterns tracks rolling indicators of how the user writes.
type CommunicationPatterns struct {
	QuestionFrequency float64 `json:"question_frequency"`     // exponential indicator, [0,1]
	AvgMessageLength  float64 `json:"average_message_length"` // words, exponentially smoothed
}

// EmotionalProfile is the bounded emotional history plus its rolling baseline.
type EmotionalProfile struct {
	BaselineSentiment float64        `json:"baseline_sentiment"`
	History           []EmotionEntry `json:"emotion_history"`
}

// EmotionEntry is one recorded emotion reading.
type EmotionEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Emotion   string    `json:"emotion"`
	Sentiment float64   `json:"sentiment"`
}

// MemoryFacts holds opportunistically extracted personal information.
// Scalar facts (name, age, location, job) live in Personal and are
// overwritten by later extractions; goal/challenge/achievement entries are
// keyed by extraction timestamp and append.
type MemoryFacts struct {
	Personal     map[string]string `json:"personal"`
	Goals        map[string]string `json:"goals"`
	Challenges   map[string]string `json:"challenges"`
	Achievements map[string]string `json:"achievements"`
	Likes        []string          `json:"likes"`
	Dislikes     []string          `json:"dislikes"`
}

// DecisionTraits shape the decision-support handler. Static unless
// explicitly updated.
type DecisionTraits struct {
	RiskTolerance         float64 `json:"risk_tolerance"`          // 0 cautious .. 1 bold
	AnalyticalVsIntuitive float64 `json:"analytical_vs_intuitive"` // 0 analytical .. 1 intuitive
}

// Turn is one stored user message with its emotion reading.
type Turn struct {
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message"`
	Emotion   emotion.Reading `json:"emotion"`
}

// Statistics are simple interaction counters.
type Statistics struct {
	TotalMessages   int       `json:"total_messages"`
	LastInteraction time.Time `json:"last_interaction"`
}

// Summary is the compact external view returned by the profile inspection
// endpoint.
type Summary struct {
	UserID            string            `json:"user_id"`
	Name              string            `json:"name"`
	TotalMessages     int               `json:"total_messages"`
	Personality       Personality       `json:"personality"`
	BaselineSentiment float64           `json:"baseline_sentiment"`
	LastInteraction   time.Time         `json:"last_interaction"`
	Personal          map[string]string `json:"personal"`
	RecentGoals       []string          `json:"recent_goals"`
	RecentChallenges  []string          `json:"recent_challenges"`
}

// newProfile returns the default profile for a user seen for the first time.
func newProfile(userID string, now time.Time) *Profile {
	return &Profile{
		UserID:    userID,
		CreatedAt: now,
		Personality: Personality{
			Formality:       0.5,
			Verbosity:       0.5,
			EmojiUsage:      0.0,
			HumorPreference: 0.5,
		},
		Facts: MemoryFacts{
			Personal:     make(map[string]string),
			Goals:        make(map[string]string),
			Challenges:   make(map[string]string),
			Achievements: make(map[string]string),
		},
		Decision: DecisionTraits{
			RiskTolerance:         0.5,
			AnalyticalVsIntuitive: 0.5,
		},
	}
}

// normalize repairs nil maps after a JSON round-trip so extraction rules can
// write without nil checks.
func (p *Profile) normalize() {
	if p.Facts.Personal == nil {
		p.Facts.Personal = make(map[string]string)
	}
	if p.Facts.Goals == nil {
		p.Facts.Goals = make(map[string]string)
	}
	if p.Facts.Challenges == nil {
		p.Facts.Challenges = make(map[string]string)
	}
	if p.Facts.Achievements == nil {
		p.Facts.Achievements = make(map[string]string)
	}
}

// Name returns the extracted display name, or "" when unknown.
func (p *Profile) Name() string {
	return p.Facts.Personal["name"]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func deepCopy(p *Profile) Profile {
	cp := *p

	if p.History != nil {
		cp.History = make([]Turn, len(p.History))
		copy(cp.History, p.History)
	}
	if p.Emotional.History != nil {
		cp.Emotional.History = make([]EmotionEntry, len(p.Emotional.History))
		copy(cp.Emotional.History, p.Emotional.History)
	}
	cp.Facts.Personal = copyMap(p.Facts.Personal)
	cp.Facts.Goals = copyMap(p.Facts.Goals)
	cp.Facts.Challenges = copyMap(p.Facts.Challenges)
	cp.Facts.Achievements = copyMap(p.Facts.Achievements)
	if p.Facts.Likes != nil {
		cp.Facts.Likes = append([]string(nil), p.Facts.Likes...)
	}
	if p.Facts.Dislikes != nil {
		cp.Facts.Dislikes = append([]string(nil), p.Facts.Dislikes...)
	}
	return cp
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
