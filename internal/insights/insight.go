// Package insights turns a user's top skills and career matches into short
// advisory texts, optionally extended by an LLM.
package insights

import (
	"fmt"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
)

// Type classifies an insight.
type Type string

const (
	TypeStrength    Type = "strength"
	TypeImprovement Type = "improvement"
	TypeOpportunity Type = "opportunity"
)

// Priority orders insights for display.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Insight is one advisory sentence.
type Insight struct {
	Text     string   `json:"insight"`
	Type     Type     `json:"type"`
	Priority Priority `json:"priority"`
}

// FallbackText is shown when nothing better can be said about the user.
const FallbackText = "Your strongest skill area shows great potential for AI-related careers."

// Fallback is the static insight used when generation is unavailable.
func Fallback() Insight {
	return Insight{Text: FallbackText, Type: TypeStrength, Priority: PriorityHigh}
}

// Compose builds the templated insights from skills sorted by XP and
// careers sorted by match percentage. A template whose data is missing is
// skipped; a zero-XP strongest skill yields the fallback text instead.
func Compose(top []ledger.SkillView, matches []careers.Match) []Insight {
	var out []Insight

	switch {
	case len(top) == 0 || top[0].XP == 0:
		out = append(out, Fallback())
	case len(matches) > 0:
		out = append(out, Insight{
			Text: fmt.Sprintf("Your strongest skill is %s with %d XP. This makes you well-suited for %s roles.",
				top[0].Name, top[0].XP, matches[0].Career.Title),
			Type:     TypeStrength,
			Priority: PriorityHigh,
		})
	}

	if len(matches) > 0 && len(matches[0].Career.NextSkills) > 0 {
		out = append(out, Insight{
			Text: fmt.Sprintf("Consider developing %s to increase your match for %s positions.",
				matches[0].Career.NextSkills[0], matches[0].Career.Title),
			Type:     TypeImprovement,
			Priority: PriorityMedium,
		})
	}

	if len(matches) > 1 {
		m := matches[1]
		out = append(out, Insight{
			Text: fmt.Sprintf("The %s field is growing by %s. Your current skills show %d%% alignment.",
				m.Career.Title, m.Career.GrowthProjection, m.Percentage),
			Type:     TypeOpportunity,
			Priority: PriorityMedium,
		})
	}
	return out
}
