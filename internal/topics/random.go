package topics

import (
	"fmt"
	"math/rand"
	"strings"
)

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything! 😄",
	"What do you call a fake noodle? An impasta! 🍝",
	"Why did the math book look so sad? Because it had too many problems! 📚",
	"What do you call a bear with no teeth? A gummy bear! 🐻",
	"Why don't eggs tell jokes? They'd crack each other up! 🥚",
}

var facts = []string{
	"🐙 **Octopuses have three hearts and blue blood!** Two hearts pump blood to the gills, while the third pumps blood to the rest of the body.",
	"🌙 **The Moon is gradually moving away from Earth** at about 3.8 centimeters per year - roughly the same rate your fingernails grow!",
	"🧠 **Your brain uses about 20% of your body's total energy**, even though it only weighs about 2% of your body weight.",
	"🦋 **Butterflies taste with their feet** and smell with their antennae. They have a completely different sensory experience than humans!",
	"⭐ **There are more possible games of chess than there are atoms in the observable universe!** Chess has about 10^120 possible games.",
}

var stories = []string{
	"**The Lighthouse Keeper's Wisdom** 🏮\n\nAn old lighthouse keeper was asked how he kept his light shining so bright for 40 years. He smiled and said, 'I just focused on today's ships. I couldn't light the way for every ship that would ever pass, but I could be sure that today's travelers made it safely home.'\n\n*Sometimes the best we can do is focus on helping one person at a time.*",
	"**The Bamboo Tree** 🎋\n\nA farmer planted bamboo and waited. For four years, nothing appeared above ground. He almost gave up, but in the fifth year, the bamboo grew 90 feet in just six weeks! Those four 'empty' years were spent growing strong roots underground.\n\n*Great things often require invisible preparation.*",
	"**The Butterfly Effect** 🦋\n\nA student felt discouraged, thinking their small acts of kindness didn't matter. Their teacher smiled and said, 'A butterfly's wings can't cause a hurricane, but they can be part of the conditions that do.' Every small kindness ripples outward in ways we never see.\n\n*Your small actions create bigger changes than you know.*",
}

// FunContent returns a joke, fact, or story depending on the request. The
// rand source is injected so selection is deterministic under a fixed seed.
func FunContent(message string, rng *rand.Rand) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "joke"):
		return pickJoke(rng)
	case strings.Contains(lower, "fact"), strings.Contains(lower, "interesting"):
		return pickFact(rng)
	case strings.Contains(lower, "story"):
		return pickStory(rng)
	default:
		switch rng.Intn(3) {
		case 0:
			return pickJoke(rng)
		case 1:
			return pickFact(rng)
		default:
			return pickStory(rng)
		}
	}
}

func pickJoke(rng *rand.Rand) string {
	return fmt.Sprintf("**Here's a joke for you:**\n\n%s\n\nHope that brought a smile to your face! 😊", jokes[rng.Intn(len(jokes))])
}

func pickFact(rng *rand.Rand) string {
	return fmt.Sprintf("**Fascinating Fact:**\n\n%s\n\nNature and science are amazing, aren't they? 🌟", facts[rng.Intn(len(facts))])
}

func pickStory(rng *rand.Rand) string {
	return fmt.Sprintf("%s\n\nWhat did you think of that little story? 😊", stories[rng.Intn(len(stories))])
}
