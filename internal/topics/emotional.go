package topics

import (
	"strings"

	"github.com/kalambet/buddyd/internal/emotion"
	"github.com/kalambet/buddyd/internal/profile"
)

// Empathetic openers keyed by detected emotion. The first entry is used;
// remaining entries keep the tables honest about tone.
var supportOpeners = map[string][]string{
	emotion.Sadness: {
		"I can sense that you're going through a tough time right now. ",
		"Your feelings are completely valid and it's okay to feel sad. ",
		"I'm here with you during this difficult moment. ",
	},
	emotion.Fear: {
		"I understand you're feeling anxious or worried. ",
		"Fear is natural, even when it's uncomfortable. ",
		"You're safe here, and we can work through this together. ",
	},
	emotion.Anger: {
		"I can tell you're feeling frustrated or upset. ",
		"Your anger is valid - something important to you has been affected. ",
		"Let's talk about what's bothering you. ",
	},
	emotion.Joy: {
		"I love seeing you happy! ",
		"That's wonderful news! ",
		"Your positive energy is contagious! ",
	},
}

const defaultOpener = "I'm here to listen. "

// followUps maps keyword categories to follow-up questions, checked in order.
var followUps = []struct {
	keywords []string
	question string
}{
	{
		keywords: []string{"worried", "anxious", "stress"},
		question: "\n\n**What's specifically worrying you?** Sometimes breaking down our concerns helps us see them more clearly. I'm here to help you work through this step by step.",
	},
	{
		keywords: []string{"sad", "depressed", "down"},
		question: "\n\n**Would you like to talk about what's making you feel this way?** I'm here to listen without judgment. Sometimes sharing our feelings can lighten the load.",
	},
	{
		keywords: []string{"angry", "frustrated", "mad"},
		question: "\n\n**What happened that made you feel this way?** Anger often tells us something important needs attention. Let's work through it together.",
	},
	{
		keywords: []string{"lonely", "alone", "isolated"},
		question: "\n\n**You're not truly alone - I'm here with you right now.** Loneliness can feel overwhelming, but remember that this feeling will pass. What's been making you feel disconnected?",
	},
	{
		keywords: []string{"excited", "happy", "great"},
		question: "\n\n**I'd love to hear more about what's making you feel so good!** Your happiness is infectious. What's been going well for you?",
	},
}

// ProvideSupport builds an empathetic reply: an opener keyed by the detected
// emotion, a personalization clause when the stored baseline is persistently
// negative, and a follow-up question picked by keyword category.
func ProvideSupport(message string, reading emotion.Reading, p profile.Profile) string {
	greeting := ""
	if name := p.Name(); name != "" {
		greeting = name + ", "
	}

	opener := defaultOpener
	if openers, ok := supportOpeners[reading.Emotion]; ok {
		opener = openers[0]
	}

	response := greeting + opener

	if p.Emotional.BaselineSentiment < -0.2 && reading.Sentiment < 0 {
		response += "I've noticed this has been a challenging period for you. Remember, you're stronger than you know. "
	}

	lower := strings.ToLower(message)
	for _, f := range followUps {
		if containsAny(lower, f.keywords) {
			response += f.question
			break
		}
	}

	return response
}
