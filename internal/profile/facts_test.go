package profile

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testProfile() *Profile {
	return newProfile("test", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		message string
		want    string
		found   bool
	}{
		{"my name is alice", "Alice", true},
		{"I'm Benjamin", "Benjamin", true},
		{"call me sam", "Sam", true},
		{"i am victoria", "Victoria", true},
		{"i am 25", "", false},          // digits are not a name
		{"i'm ok", "", false},           // too short
		{"i'm al", "", false},           // too short
		{"the weather is nice", "", false},
		{"my name is r2d2", "", false}, // non-alphabetic
	}
	for _, tt := range tests {
		name, found := extractName(lowered(tt.message))
		if found != tt.found || name != tt.want {
			t.Errorf("extractName(%q) = (%q, %v), want (%q, %v)",
				tt.message, name, found, tt.want, tt.found)
		}
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		message string
		want    int
		found   bool
	}{
		{"i am 30 years old", 30, true},
		{"i'm 18 years old", 18, true},
		{"age 45", 45, true},
		{"i am 4 years old", 0, false},   // below plausible range
		{"i am 150 years old", 0, false}, // above plausible range
		{"i am 120 years old", 120, true},
		{"i am 5 years old", 5, true},
		{"no age here", 0, false},
	}
	for _, tt := range tests {
		age, found := extractAge(lowered(tt.message))
		if found != tt.found || age != tt.want {
			t.Errorf("extractAge(%q) = (%d, %v), want (%d, %v)",
				tt.message, age, found, tt.want, tt.found)
		}
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		message string
		want    string
		found   bool
	}{
		{"i live in berlin", "Berlin", true},
		{"i'm from new york city", "New York City", true},
		{"born in san francisco", "San Francisco", true},
		{"i live in a very small town by the sea", "", false}, // too many tokens
		{"nothing here", "", false},
	}
	for _, tt := range tests {
		loc, found := extractLocation(lowered(tt.message))
		if found != tt.found || loc != tt.want {
			t.Errorf("extractLocation(%q) = (%q, %v), want (%q, %v)",
				tt.message, loc, found, tt.want, tt.found)
		}
	}
}

func TestExtractJob(t *testing.T) {
	tests := []struct {
		message string
		want    string
		found   bool
	}{
		{"i work as a software engineer", "Software Engineer", true},
		{"i work as an accountant", "Accountant", true},
		{"i am a teacher", "Teacher", true},
		{"my job is data analysis", "Data Analysis", true},
		{"i work as a very senior principal staff engineer", "", false}, // too many tokens
	}
	for _, tt := range tests {
		job, found := extractJob(lowered(tt.message))
		if found != tt.found || job != tt.want {
			t.Errorf("extractJob(%q) = (%q, %v), want (%q, %v)",
				tt.message, job, found, tt.want, tt.found)
		}
	}
}

func TestExtractFactsCategories(t *testing.T) {
	p := testProfile()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	extractFacts(p, "I want to run a marathon", now)
	extractFacts(p, "really stressed about the deadline", now.Add(time.Second))
	extractFacts(p, "proud of finishing the course", now.Add(2*time.Second))
	extractFacts(p, "I love hiking", now.Add(3*time.Second))
	extractFacts(p, "I hate traffic", now.Add(4*time.Second))

	if len(p.Facts.Goals) != 1 {
		t.Errorf("Goals = %v, want one entry", p.Facts.Goals)
	}
	if len(p.Facts.Challenges) != 1 {
		t.Errorf("Challenges = %v, want one entry", p.Facts.Challenges)
	}
	if len(p.Facts.Achievements) != 1 {
		t.Errorf("Achievements = %v, want one entry", p.Facts.Achievements)
	}
	if len(p.Facts.Likes) != 1 || p.Facts.Likes[0] != "I love hiking" {
		t.Errorf("Likes = %v", p.Facts.Likes)
	}
	if len(p.Facts.Dislikes) != 1 || p.Facts.Dislikes[0] != "I hate traffic" {
		t.Errorf("Dislikes = %v", p.Facts.Dislikes)
	}
}

func TestExtractFactsScalarOverwrite(t *testing.T) {
	p := testProfile()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	extractFacts(p, "my name is alice", now)
	extractFacts(p, "actually, call me ally", now.Add(time.Second))

	if got := p.Facts.Personal["name"]; got != "Ally" {
		t.Errorf("name = %q, want Ally", got)
	}
}

func TestAppendFactEvictsOldest(t *testing.T) {
	p := testProfile()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < factListCap+10; i++ {
		extractFacts(p, fmt.Sprintf("I want to reach milestone %d", i), base.Add(time.Duration(i)*time.Second))
	}

	if len(p.Facts.Goals) != factListCap {
		t.Fatalf("Goals size = %d, want %d", len(p.Facts.Goals), factListCap)
	}
	// The oldest keys were evicted; the newest entry survives.
	newestKey := base.Add(time.Duration(factListCap+9) * time.Second).Format(time.RFC3339Nano)
	if _, ok := p.Facts.Goals[newestKey]; !ok {
		t.Error("newest goal entry missing after eviction")
	}
	oldestKey := base.Format(time.RFC3339Nano)
	if _, ok := p.Facts.Goals[oldestKey]; ok {
		t.Error("oldest goal entry should have been evicted")
	}
}

func TestLikesCapped(t *testing.T) {
	p := testProfile()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < factListCap+5; i++ {
		extractFacts(p, fmt.Sprintf("I love thing number %d", i), now)
	}
	if len(p.Facts.Likes) != factListCap {
		t.Errorf("Likes size = %d, want %d", len(p.Facts.Likes), factListCap)
	}
	last := p.Facts.Likes[len(p.Facts.Likes)-1]
	if last != fmt.Sprintf("I love thing number %d", factListCap+4) {
		t.Errorf("newest like = %q", last)
	}
}

// lowered mirrors what extractFacts does before pattern matching.
func lowered(s string) string { return strings.ToLower(s) }
