package topics

import (
	"strings"
	"testing"
)

func TestProvideKnowledge(t *testing.T) {
	tests := []struct {
		question string
		fragment string
	}{
		{"what is gravity", "**Gravity**"},
		{"explain the atom", "**Atoms**"},
		{"how does artificial intelligence work", "**Artificial Intelligence (AI)**"},
		{"what is the internet", "**The Internet**"},
		{"tell me about ancient civilizations", "**History**"},
	}
	for _, tt := range tests {
		got := ProvideKnowledge(tt.question)
		if !strings.Contains(got, tt.fragment) {
			t.Errorf("ProvideKnowledge(%q) missing %q, got %q", tt.question, tt.fragment, got)
		}
	}
}

func TestProvideKnowledgeCategoryFallbacks(t *testing.T) {
	got := ProvideKnowledge("explain chemistry")
	if !strings.Contains(got, "Science is fascinating!") {
		t.Errorf("unrecognized science detail should fall back, got %q", got)
	}

	got = ProvideKnowledge("explain programming")
	if !strings.Contains(got, "Technology is evolving") {
		t.Errorf("unrecognized tech detail should fall back, got %q", got)
	}
}

func TestProvideKnowledgeAIWholeWordOnly(t *testing.T) {
	got := ProvideKnowledge("what is AI?")
	if !strings.Contains(got, "**Artificial Intelligence (AI)**") {
		t.Errorf("standalone ai should match, got %q", got)
	}

	// "ai" inside "explain" must not trigger the AI answer.
	got = ProvideKnowledge("explain computer networks")
	if strings.Contains(got, "**Artificial Intelligence (AI)**") {
		t.Errorf("embedded ai matched, got %q", got)
	}
}

func TestProvideKnowledgeDefault(t *testing.T) {
	got := ProvideKnowledge("what is love")
	if !strings.Contains(got, "interesting question") {
		t.Errorf("expected generic answer, got %q", got)
	}
}
