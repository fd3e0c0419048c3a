package topics

import (
	"strings"
	"testing"

	"github.com/kalambet/buddyd/internal/emotion"
	"github.com/kalambet/buddyd/internal/profile"
)

func namedProfile(name string) profile.Profile {
	return profile.Profile{
		Facts: profile.MemoryFacts{Personal: map[string]string{"name": name}},
	}
}

func TestProvideSupportOpeners(t *testing.T) {
	tests := []struct {
		emotion string
		opener  string
	}{
		{emotion.Sadness, "I can sense that you're going through a tough time"},
		{emotion.Fear, "I understand you're feeling anxious or worried"},
		{emotion.Anger, "I can tell you're feeling frustrated or upset"},
		{emotion.Joy, "I love seeing you happy!"},
		{emotion.Neutral, "I'm here to listen."},
		{emotion.Surprise, "I'm here to listen."},
	}
	for _, tt := range tests {
		got := ProvideSupport("just talking", emotion.Reading{Emotion: tt.emotion}, profile.Profile{})
		if !strings.HasPrefix(got, tt.opener) {
			t.Errorf("ProvideSupport(%s) = %q, want opener %q", tt.emotion, got, tt.opener)
		}
	}
}

func TestProvideSupportGreetsByName(t *testing.T) {
	got := ProvideSupport("just talking", emotion.Reading{Emotion: emotion.Sadness}, namedProfile("Alice"))
	if !strings.HasPrefix(got, "Alice, ") {
		t.Errorf("expected name greeting, got %q", got)
	}
}

func TestProvideSupportPersonalization(t *testing.T) {
	p := profile.Profile{}
	p.Emotional.BaselineSentiment = -0.5

	got := ProvideSupport("everything is hard", emotion.Reading{Emotion: emotion.Sadness, Sentiment: -0.3}, p)
	if !strings.Contains(got, "challenging period") {
		t.Errorf("negative baseline with negative reading should personalize, got %q", got)
	}

	// A positive message suppresses the clause even with a low baseline.
	got = ProvideSupport("things went fine", emotion.Reading{Emotion: emotion.Joy, Sentiment: 0.2}, p)
	if strings.Contains(got, "challenging period") {
		t.Errorf("positive reading should not personalize, got %q", got)
	}

	// A near-neutral baseline suppresses it too.
	p.Emotional.BaselineSentiment = -0.1
	got = ProvideSupport("everything is hard", emotion.Reading{Emotion: emotion.Sadness, Sentiment: -0.3}, p)
	if strings.Contains(got, "challenging period") {
		t.Errorf("baseline above threshold should not personalize, got %q", got)
	}
}

func TestProvideSupportFollowUps(t *testing.T) {
	tests := []struct {
		message  string
		fragment string
	}{
		{"I'm so worried about tomorrow", "What's specifically worrying you?"},
		{"feeling really sad lately", "Would you like to talk about what's making you feel this way?"},
		{"I'm angry at my coworker", "What happened that made you feel this way?"},
		{"I feel so alone", "You're not truly alone"},
		{"I'm excited about the trip", "I'd love to hear more"},
	}
	for _, tt := range tests {
		got := ProvideSupport(tt.message, emotion.Reading{Emotion: emotion.Neutral}, profile.Profile{})
		if !strings.Contains(got, tt.fragment) {
			t.Errorf("ProvideSupport(%q) missing follow-up %q, got %q", tt.message, tt.fragment, got)
		}
	}
}

func TestProvideSupportFirstFollowUpWins(t *testing.T) {
	// "worried" is checked before "sad".
	got := ProvideSupport("worried and sad", emotion.Reading{Emotion: emotion.Neutral}, profile.Profile{})
	if !strings.Contains(got, "What's specifically worrying you?") {
		t.Errorf("expected the worry follow-up, got %q", got)
	}
	if strings.Contains(got, "Would you like to talk about") {
		t.Errorf("only one follow-up should be appended, got %q", got)
	}
}
