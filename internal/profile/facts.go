package profile

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Fact extraction is best-effort: a fixed ordered set of pattern rules runs
// against the lowercased message. Scalar facts overwrite earlier values;
// goal/challenge/achievement/preference entries append. Ambiguous or partial
// matches are discarded rather than guessed at.

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is (\w+)`),
	regexp.MustCompile(`i'm (\w+)`),
	regexp.MustCompile(`call me (\w+)`),
	regexp.MustCompile(`i am (\w+)`),
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`i am (\d+) years old`),
	regexp.MustCompile(`i'm (\d+) years old`),
	regexp.MustCompile(`i am (\d+)`),
	regexp.MustCompile(`age (\d+)`),
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i live in ([\w\s]+)`),
	regexp.MustCompile(`i'm from ([\w\s]+)`),
	regexp.MustCompile(`living in ([\w\s]+)`),
	regexp.MustCompile(`born in ([\w\s]+)`),
}

var jobPatterns = []*regexp.Regexp{
	regexp.MustCompile(`i work as (?:a |an )?([\w\s]+)`),
	regexp.MustCompile(`i'm (?:a |an )?([\w\s]+) by profession`),
	regexp.MustCompile(`my job is ([\w\s]+)`),
	regexp.MustCompile(`i am (?:a |an )?(teacher|doctor|engineer|student|programmer|developer|designer|manager)`),
}

var (
	goalKeywords        = []string{"want to", "hope to", "plan to", "goal is", "dream is", "trying to"}
	challengeKeywords   = []string{"worried about", "anxious about", "stressed about", "problem with", "struggling with"}
	achievementKeywords = []string{"proud of", "accomplished", "achieved", "succeeded", "won", "graduated"}
)

const (
	minAge            = 5
	maxAge            = 120
	maxLocationTokens = 3
	maxJobTokens      = 4
)

// extractFacts runs every rule against the message and records what sticks.
func extractFacts(p *Profile, message string, now time.Time) {
	lower := strings.ToLower(message)

	if name, ok := extractName(lower); ok {
		p.Facts.Personal["name"] = name
	}
	if age, ok := extractAge(lower); ok {
		p.Facts.Personal["age"] = strconv.Itoa(age)
	}
	if loc, ok := extractLocation(lower); ok {
		p.Facts.Personal["location"] = loc
	}
	if job, ok := extractJob(lower); ok {
		p.Facts.Personal["job"] = job
	}

	ts := now.UTC().Format(time.RFC3339Nano)
	if containsAny(lower, goalKeywords) {
		appendFact(p.Facts.Goals, ts, message)
	}
	if containsAny(lower, challengeKeywords) {
		appendFact(p.Facts.Challenges, ts, message)
	}
	if containsAny(lower, achievementKeywords) {
		appendFact(p.Facts.Achievements, ts, message)
	}

	if strings.Contains(lower, "i love") || strings.Contains(lower, "i really like") {
		p.Facts.Likes = append(p.Facts.Likes, message)
		if len(p.Facts.Likes) > factListCap {
			p.Facts.Likes = p.Facts.Likes[len(p.Facts.Likes)-factListCap:]
		}
	} else if strings.Contains(lower, "i hate") || strings.Contains(lower, "i dislike") {
		p.Facts.Dislikes = append(p.Facts.Dislikes, message)
		if len(p.Facts.Dislikes) > factListCap {
			p.Facts.Dislikes = p.Facts.Dislikes[len(p.Facts.Dislikes)-factListCap:]
		}
	}
}

// extractName returns the last name-pattern match of more than two letters.
// Digit matches (e.g. "i am 25") are rejected rather than guessed at.
func extractName(lower string) (string, bool) {
	var name string
	for _, re := range namePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		candidate := m[1]
		if len(candidate) <= 2 || !isAlphabetic(candidate) {
			continue
		}
		name = titleCase(candidate)
	}
	return name, name != ""
}

// extractAge accepts only values in the plausible [5,120] range.
func extractAge(lower string) (int, bool) {
	age, found := 0, false
	for _, re := range agePatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < minAge || n > maxAge {
			continue
		}
		age, found = n, true
	}
	return age, found
}

// extractLocation accepts matches of at most three tokens.
func extractLocation(lower string) (string, bool) {
	var loc string
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" || len(strings.Fields(candidate)) > maxLocationTokens {
			continue
		}
		loc = titleCase(candidate)
	}
	return loc, loc != ""
}

// extractJob accepts matches of at most four tokens.
func extractJob(lower string) (string, bool) {
	var job string
	for _, re := range jobPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" || len(strings.Fields(candidate)) > maxJobTokens {
			continue
		}
		job = titleCase(candidate)
	}
	return job, job != ""
}

// appendFact adds a timestamp-keyed entry and evicts the oldest keys beyond
// the cap. RFC 3339 keys sort chronologically, so lexicographic order works.
func appendFact(m map[string]string, key, value string) {
	m[key] = value
	for len(m) > factListCap {
		oldest := ""
		for k := range m {
			if oldest == "" || k < oldest {
				oldest = k
			}
		}
		delete(m, oldest)
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(s) > 0
}

// titleCase uppercases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
