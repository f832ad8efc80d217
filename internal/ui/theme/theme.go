// Package theme holds the lipgloss palette and styles for CLI output.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/skills"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Width(12)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginTop(1)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Highlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

var categoryColors = map[skills.Category]lipgloss.Style{
	skills.CategoryCognitive:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")),
	skills.CategoryAnalytical: lipgloss.NewStyle().Foreground(lipgloss.Color("#38BDF8")),
	skills.CategoryCreative:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F472B6")),
	skills.CategorySocial:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
	skills.CategoryTechnical:  lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
}

// Category returns the style used for a skill category's name.
func Category(c skills.Category) lipgloss.Style {
	if s, ok := categoryColors[c]; ok {
		return s
	}
	return Body
}

// InsightMarker returns a styled bullet for an insight type.
func InsightMarker(t insights.Type) string {
	switch t {
	case insights.TypeStrength:
		return Good.Render("+")
	case insights.TypeImprovement:
		return Highlight.Render("^")
	case insights.TypeOpportunity:
		return lipgloss.NewStyle().Foreground(Primary).Bold(true).Render("*")
	}
	return Hint.Render("-")
}

// Match styles a match percentage by strength.
func Match(pct int) lipgloss.Style {
	switch {
	case pct >= 75:
		return Good
	case pct >= 40:
		return Highlight
	}
	return Subtitle
}
