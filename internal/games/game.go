package games

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/careerquest/internal/skills"
)

// Game is a mini-game and the skills it trains. The first skill is the
// primary skill; the optional second is secondary.
type Game struct {
	ID     string
	Name   string
	Skills []string
}

// Primary returns the primary skill name.
func (g Game) Primary() string {
	if len(g.Skills) == 0 {
		return ""
	}
	return g.Skills[0]
}

// seedGames is the fixed game table in display order.
var seedGames = []Game{
	{ID: "spot-ai", Name: "Spot the AI", Skills: []string{"Media Literacy", "Critical Thinking"}},
	{ID: "puzzle-duel", Name: "Puzzle Duel", Skills: []string{"Logic", "Problem-Solving"}},
	{ID: "story-battle", Name: "Story Battle", Skills: []string{"Creativity", "Communication"}},
	{ID: "fact-check", Name: "Fact Check", Skills: []string{"Research", "Critical Reasoning"}},
	{ID: "teaching", Name: "Teach the AI", Skills: []string{"Communication", "Knowledge Depth"}},
	{ID: "pattern", Name: "Pattern Guess", Skills: []string{"Analytical Thinking", "Intro to ML"}},
	{ID: "prompt-battle", Name: "Prompt Battle", Skills: []string{"Prompt Engineering", "Creativity"}},
	{ID: "case-simulation", Name: "Case Simulation", Skills: []string{"Applied AI", "Problem-Solving"}},
	{ID: "coordination-lab", Name: "Coordination Lab", Skills: []string{"Multi-Tool Adaptability", "Evaluation"}},
	{ID: "ethical-scenarios", Name: "Ethical Scenarios", Skills: []string{"Ethical Decision-Making"}},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(seedGames))
	for i, g := range seedGames {
		m[g.ID] = i
	}
	return m
}()

// All returns every game in display order.
func All() []Game {
	out := make([]Game, len(seedGames))
	for i, g := range seedGames {
		g.Skills = slices.Clone(g.Skills)
		out[i] = g
	}
	return out
}

// Get returns a game by ID.
func Get(id string) (Game, bool) {
	i, ok := byID[id]
	if !ok {
		return Game{}, false
	}
	g := seedGames[i]
	g.Skills = slices.Clone(g.Skills)
	return g, true
}

// SkillsFor returns the skill names trained by a game, or nil for an
// unknown game.
func SkillsFor(id string) []string {
	g, ok := Get(id)
	if !ok {
		return nil
	}
	return g.Skills
}

// Validate checks the game table against the skill catalog.
func Validate() error {
	return validateGames(seedGames)
}

func validateGames(gs []Game) error {
	var errs []string
	seen := make(map[string]bool, len(gs))
	for _, g := range gs {
		if g.ID == "" {
			errs = append(errs, "game with empty ID")
			continue
		}
		if seen[g.ID] {
			errs = append(errs, fmt.Sprintf("duplicate game ID: %q", g.ID))
		}
		seen[g.ID] = true

		if n := len(g.Skills); n < 1 || n > 2 {
			errs = append(errs, fmt.Sprintf("game %q trains %d skills, want 1 or 2", g.ID, n))
		}
		for _, name := range g.Skills {
			if !skills.Exists(name) {
				errs = append(errs, fmt.Sprintf("game %q references unknown skill %q", g.ID, name))
			}
		}
		if len(g.Skills) == 2 && g.Skills[0] == g.Skills[1] {
			errs = append(errs, fmt.Sprintf("game %q lists %q twice", g.ID, g.Skills[0]))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("game table validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
