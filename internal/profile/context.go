package profile

import (
	"fmt"
	"strings"
)

// PromptContext renders the profile as a compact block of guidance for the
// generative provider: known personal facts, communication style notes,
// emotional state, current goal/challenge, and the tail of the conversation.
func (p *Profile) PromptContext() string {
	var parts []string

	var personal []string
	if v := p.Facts.Personal["name"]; v != "" {
		personal = append(personal, "Name: "+v)
	}
	if v := p.Facts.Personal["age"]; v != "" {
		personal = append(personal, "Age: "+v)
	}
	if v := p.Facts.Personal["location"]; v != "" {
		personal = append(personal, "Location: "+v)
	}
	if v := p.Facts.Personal["job"]; v != "" {
		personal = append(personal, "Job: "+v)
	}
	if len(personal) > 0 {
		parts = append(parts, "User info: "+strings.Join(personal, ", "))
	}

	var style []string
	switch {
	case p.Personality.Formality > 0.7:
		style = append(style, "prefers formal communication")
	case p.Personality.Formality < 0.3:
		style = append(style, "prefers casual communication")
	}
	if p.Personality.EmojiUsage > 0.1 {
		style = append(style, "uses emojis frequently")
	}
	switch {
	case p.Personality.Verbosity > 0.7:
		style = append(style, "prefers detailed responses")
	case p.Personality.Verbosity < 0.3:
		style = append(style, "prefers concise responses")
	}
	if len(style) > 0 {
		parts = append(parts, "Communication style: "+strings.Join(style, ", "))
	}

	switch {
	case p.Emotional.BaselineSentiment > 0.3:
		parts = append(parts, "User generally has a positive emotional state")
	case p.Emotional.BaselineSentiment < -0.3:
		parts = append(parts, "User may be going through difficult times - be extra supportive")
	}

	if goals := lastValues(p.Facts.Goals, 1); len(goals) > 0 {
		parts = append(parts, "Current goal: "+goals[0])
	}
	if challenges := lastValues(p.Facts.Challenges, 1); len(challenges) > 0 {
		parts = append(parts, "Current challenge: "+challenges[0])
	}

	if n := len(p.History); n > 0 {
		recent := p.History
		if n > 3 {
			recent = recent[n-3:]
		}
		parts = append(parts, "Recent conversation:")
		for _, t := range recent {
			parts = append(parts, fmt.Sprintf("- User: %s", t.Message))
		}
	}

	return strings.Join(parts, "\n")
}
