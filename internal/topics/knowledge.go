package topics

import (
	"strings"
	"unicode"
)

// ProvideKnowledge answers factual questions from static templated content.
// Keyword dispatch only, no external calls.
func ProvideKnowledge(question string) string {
	lower := strings.ToLower(question)

	if containsAny(lower, []string{"gravity", "physics", "chemistry", "biology", "atom", "molecule"}) {
		return scienceAnswer(lower)
	}
	if containsAny(lower, []string{"computer", "internet", "artificial intelligence", "programming"}) || containsWord(lower, "ai") {
		return technologyAnswer(lower)
	}
	if containsAny(lower, []string{"history", "war", "ancient", "civilization", "empire"}) {
		return historyAnswer()
	}

	return "That's an interesting question! While I can provide some insights, I'd encourage you to explore reliable sources for detailed information. What specifically about this topic interests you most?"
}

func scienceAnswer(lower string) string {
	if strings.Contains(lower, "gravity") {
		return "**Gravity** is a fundamental force that attracts objects with mass toward each other. On Earth, gravity gives weight to physical objects and causes them to fall toward the ground when dropped. It's what keeps us on the planet's surface!\n\n**Fun fact**: Gravity is actually the weakest of the four fundamental forces, but it has infinite range and affects everything with mass."
	}
	if strings.Contains(lower, "atom") {
		return "**Atoms** are the basic building blocks of all matter! They consist of:\n- **Nucleus**: Contains protons (+) and neutrons (neutral)\n- **Electrons**: Orbit around the nucleus (-)\n\n**Amazing fact**: If an atom were the size of a football stadium, the nucleus would be about the size of a marble at the center!"
	}
	return "Science is fascinating! I'd love to explore this topic with you. Can you be more specific about what aspect interests you most?"
}

func technologyAnswer(lower string) string {
	if containsWord(lower, "ai") || strings.Contains(lower, "artificial intelligence") {
		return "**Artificial Intelligence (AI)** is technology that enables machines to simulate human intelligence. AI can:\n- Learn from data (Machine Learning)\n- Understand language (Natural Language Processing)\n- Recognize patterns\n- Make decisions\n\n**That's me!** I use AI to understand your emotions, remember our conversations, and provide helpful responses tailored to you."
	}
	if strings.Contains(lower, "internet") {
		return "**The Internet** is a global network connecting billions of devices worldwide. It allows us to:\n- Share information instantly\n- Communicate across vast distances\n- Access vast libraries of knowledge\n- Connect with people globally\n\n**Mind-blowing fact**: Every minute, over 500 hours of video are uploaded to YouTube!"
	}
	return "Technology is evolving so rapidly! What specific tech topic would you like to explore together?"
}

// containsWord matches word against whole alphanumeric tokens only, so "ai"
// does not fire inside "explain".
func containsWord(lower, word string) bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, f := range fields {
		if f == word {
			return true
		}
	}
	return false
}

func historyAnswer() string {
	return "**History** is full of fascinating stories and lessons! From ancient civilizations to modern times, human history shows us patterns of innovation, conflict, cooperation, and growth.\n\n**Key insight**: Understanding history helps us make better decisions today by learning from past successes and mistakes.\n\nWhat specific historical period or event interests you most?"
}
