package topics

import (
	"strings"

	"github.com/kalambet/buddyd/internal/profile"
)

// Decision-framework thresholds on the analytical-vs-intuitive trait and the
// risk-tolerance trait.
const (
	intuitiveBelow  = 0.4
	analyticalAbove = 0.6
	cautiousBelow   = 0.3
	boldAbove       = 0.7
)

const intuitiveFramework = "**Intuitive Approach** (based on your decision-making style):\n" +
	"1. **Gut feeling**: What does your instinct tell you?\n" +
	"2. **Excitement test**: Which option makes you feel more energized?\n" +
	"3. **Future self**: Imagine yourself in 5 years - which choice would you be proud of?\n" +
	"4. **Values alignment**: Which option aligns better with what matters most to you?\n\n"

const analyticalFramework = "**Analytical Approach** (based on your decision-making style):\n" +
	"1. **Pros and cons**: List the advantages and disadvantages of each option\n" +
	"2. **Worst-case scenario**: What's the worst that could happen with each choice?\n" +
	"3. **Opportunity cost**: What are you giving up with each option?\n" +
	"4. **Data check**: What evidence supports each choice?\n\n"

const balancedFramework = "**Balanced Approach**:\n" +
	"1. **Head vs Heart**: What do logic and emotions each tell you?\n" +
	"2. **Short vs Long-term**: Consider both immediate and future impacts\n" +
	"3. **Advice test**: What would you tell a friend in this situation?\n\n"

const cautiousRisk = "**Risk Consideration**: Given your careful nature, I'd suggest:\n" +
	"- Choose the option with more predictable outcomes\n" +
	"- Consider what safeguards you can put in place\n" +
	"- Remember: sometimes the 'safer' choice has hidden risks too"

const boldRisk = "**Risk Consideration**: You're comfortable with bold moves, so:\n" +
	"- Don't let fear of failure hold you back\n" +
	"- The bigger risk might be playing it too safe\n" +
	"- Trust your ability to handle whatever comes"

const balancedRisk = "**Risk Consideration**: Balance safety with opportunity:\n" +
	"- Consider moderate risks that offer reasonable rewards\n" +
	"- You don't need to choose the extreme option\n" +
	"- Sometimes the middle path is the wisest"

// HelpDecide builds a decision-support reply shaped by the user's stored
// decision-making traits: framework by the analytical trait, risk framing by
// risk tolerance.
func HelpDecide(message string, p profile.Profile) string {
	var sb strings.Builder

	if name := p.Name(); name != "" {
		sb.WriteString(name + ", let me help you think through this decision.\n\n")
	} else {
		sb.WriteString("Let me help you think through this decision.\n\n")
	}

	lower := strings.ToLower(message)
	if idx := strings.Index(lower, "should i"); idx >= 0 {
		considering := strings.TrimSpace(lower[idx+len("should i"):])
		if considering != "" {
			sb.WriteString("**You're considering: " + considering + "**\n\n")
		}
	}

	switch {
	case p.Decision.AnalyticalVsIntuitive < intuitiveBelow:
		sb.WriteString(intuitiveFramework)
	case p.Decision.AnalyticalVsIntuitive > analyticalAbove:
		sb.WriteString(analyticalFramework)
	default:
		sb.WriteString(balancedFramework)
	}

	switch {
	case p.Decision.RiskTolerance < cautiousBelow:
		sb.WriteString(cautiousRisk)
	case p.Decision.RiskTolerance > boldAbove:
		sb.WriteString(boldRisk)
	default:
		sb.WriteString(balancedRisk)
	}

	sb.WriteString("\n\n**What specific aspect of this decision is most challenging for you?**")
	return sb.String()
}
