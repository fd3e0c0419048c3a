package profile

import (
	"strings"
	"testing"
	"time"
)

func TestPromptContextEmptyProfile(t *testing.T) {
	p := testProfile()
	if got := p.PromptContext(); got != "" {
		t.Errorf("fresh profile should produce no context, got %q", got)
	}
}

func TestPromptContextPersonalFacts(t *testing.T) {
	p := testProfile()
	p.Facts.Personal["name"] = "Alice"
	p.Facts.Personal["age"] = "30"
	p.Facts.Personal["job"] = "Engineer"

	got := p.PromptContext()
	if !strings.Contains(got, "User info: Name: Alice, Age: 30, Job: Engineer") {
		t.Errorf("PromptContext = %q", got)
	}
}

func TestPromptContextStyleNotes(t *testing.T) {
	p := testProfile()
	p.Personality.Formality = 0.9
	p.Personality.Verbosity = 0.1
	p.Personality.EmojiUsage = 0.2

	got := p.PromptContext()
	for _, want := range []string{
		"prefers formal communication",
		"prefers concise responses",
		"uses emojis frequently",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}

	// Mid-range traits produce no style notes.
	p = testProfile()
	if got := p.PromptContext(); strings.Contains(got, "Communication style") {
		t.Errorf("unexpected style note in %q", got)
	}
}

func TestPromptContextEmotionalBaseline(t *testing.T) {
	p := testProfile()
	p.Emotional.BaselineSentiment = 0.5
	if got := p.PromptContext(); !strings.Contains(got, "positive emotional state") {
		t.Errorf("PromptContext = %q", got)
	}

	p.Emotional.BaselineSentiment = -0.5
	if got := p.PromptContext(); !strings.Contains(got, "be extra supportive") {
		t.Errorf("PromptContext = %q", got)
	}

	p.Emotional.BaselineSentiment = 0.1
	if got := p.PromptContext(); strings.Contains(got, "emotional state") {
		t.Errorf("near-neutral baseline should add nothing, got %q", got)
	}
}

func TestPromptContextGoalsAndHistory(t *testing.T) {
	p := testProfile()
	p.Facts.Goals["2025-06-01T00:00:00Z"] = "learn piano"
	p.Facts.Goals["2025-06-02T00:00:00Z"] = "run a marathon"
	p.Facts.Challenges["2025-06-01T00:00:00Z"] = "exam stress"

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, msg := range []string{"one", "two", "three", "four"} {
		p.History = append(p.History, Turn{Timestamp: now, Message: msg})
	}

	got := p.PromptContext()
	if !strings.Contains(got, "Current goal: run a marathon") {
		t.Errorf("newest goal should win, got %q", got)
	}
	if !strings.Contains(got, "Current challenge: exam stress") {
		t.Errorf("missing challenge in %q", got)
	}

	// Only the last three turns are replayed.
	if strings.Contains(got, "- User: one") {
		t.Errorf("oldest turn should be dropped, got %q", got)
	}
	for _, want := range []string{"- User: two", "- User: three", "- User: four"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
}
