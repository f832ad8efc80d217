// Package components renders reusable CLI widgets.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerquest/internal/skills"
	"github.com/abhisek/careerquest/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// LevelBar shows progress from the current level towards the next.
func LevelBar(xp, width int) ProgressBar {
	label := fmt.Sprintf("Lv %d", skills.Level(xp))
	return NewProgressBar(label, float64(skills.LevelProgress(xp))/skills.XPPerLevel, true, width)
}

// Cells returns the filled and empty cell counts for the bar body.
func (p ProgressBar) Cells() (filled, empty int) {
	width := p.Width - lipgloss.Width(p.prefix())
	if p.ShowPercent {
		width -= 6 // "  100%"
	}
	if width < 4 {
		width = 4
	}
	filled = int(float64(width) * p.Percent)
	filled = max(0, min(filled, width))
	return filled, width - filled
}

func (p ProgressBar) prefix() string {
	if p.Label == "" {
		return ""
	}
	return theme.Body.Render(p.Label) + "  "
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	filled, empty := p.Cells()

	var b strings.Builder
	b.WriteString(p.prefix())
	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", empty)))
	if p.ShowPercent {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}
	return b.String()
}
