package profile

import (
	"strings"
	"unicode/utf8"
)

// Exponential smoothing and nudge constants for style inference.
const (
	smoothKeep   = 0.9  // weight of the previous estimate
	smoothSample = 0.1  // weight of the new sample
	nudgeLarge   = 0.1  // formality adjustment per message
	nudgeSmall   = 0.05 // verbosity adjustment per message

	questionKeep   = 0.95
	questionSample = 0.05

	verboseWordCount = 30 // above this a message nudges verbosity up
	terseWordCount   = 10 // below this a message nudges verbosity down
)

var formalWords = []string{
	"please", "thank", "kindly", "appreciate", "sincerely", "respectfully", "regards",
}

var casualWords = []string{
	"hey", "yo", "sup", "gonna", "wanna", "yeah", "ok", "lol",
}

// updateStyle applies the communication-style portion of the update pipeline:
// emoji usage, formality, message-length average, verbosity, and question
// frequency. All trait fields stay clamped to [0,1].
func updateStyle(p *Profile, message string) {
	lower := strings.ToLower(message)

	// Emoji usage: smoothed fraction of emoji runes in the message.
	runeCount := utf8.RuneCountInString(message)
	if runeCount == 0 {
		runeCount = 1
	}
	sample := float64(countEmoji(message)) / float64(runeCount)
	p.Personality.EmojiUsage = clamp01(p.Personality.EmojiUsage*smoothKeep + sample*smoothSample)

	// Formality: asymmetric nudge from formal/casual lexicon hits.
	formal := hitsIn(lower, formalWords)
	casual := hitsIn(lower, casualWords)
	switch {
	case formal > casual:
		p.Personality.Formality = clamp01(p.Personality.Formality + nudgeLarge)
	case casual > formal:
		p.Personality.Formality = clamp01(p.Personality.Formality - nudgeLarge)
	}

	// Rolling average message length in words.
	words := len(strings.Fields(message))
	if p.Patterns.AvgMessageLength == 0 {
		p.Patterns.AvgMessageLength = float64(words)
	} else {
		p.Patterns.AvgMessageLength = p.Patterns.AvgMessageLength*smoothKeep + float64(words)*smoothSample
	}

	// Verbosity nudges on clearly long or clearly short messages.
	switch {
	case words > verboseWordCount:
		p.Personality.Verbosity = clamp01(p.Personality.Verbosity + nudgeSmall)
	case words < terseWordCount:
		p.Personality.Verbosity = clamp01(p.Personality.Verbosity - nudgeSmall)
	}

	// Question frequency: exponential indicator of trailing question marks.
	var isQuestion float64
	if strings.HasSuffix(strings.TrimSpace(message), "?") {
		isQuestion = 1
	}
	p.Patterns.QuestionFrequency = clamp01(p.Patterns.QuestionFrequency*questionKeep + isQuestion*questionSample)
}

// countEmoji counts runes in the common emoji blocks. Good enough for a
// style signal; completeness is not the point.
func countEmoji(s string) int {
	var n int
	for _, r := range s {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			n++
		case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			n++
		}
	}
	return n
}

func hitsIn(lower string, words []string) int {
	var n int
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
