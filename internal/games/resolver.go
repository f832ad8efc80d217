package games

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome is the result of a single round against the AI.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomeDraw Outcome = "draw"
)

// ParseOutcome converts user input into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(strings.ToLower(strings.TrimSpace(s))); o {
	case OutcomeWin, OutcomeLose, OutcomeDraw:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want win, lose or draw)", s)
	}
}

// ScoringMode selects how a round's XP is spread across the game's skills.
type ScoringMode string

const (
	// ScoringUniform awards the full round XP to every mapped skill.
	ScoringUniform ScoringMode = "uniform"
	// ScoringPrimarySplit awards the full round XP to the primary skill
	// and half of it, truncated, to the secondary skill.
	ScoringPrimarySplit ScoringMode = "primary-split"
)

// ParseScoringMode validates a configured scoring mode.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch m := ScoringMode(s); m {
	case ScoringUniform, ScoringPrimarySplit:
		return m, nil
	case "":
		return ScoringUniform, nil
	default:
		return "", fmt.Errorf("unknown scoring mode %q (want uniform or primary-split)", s)
	}
}

// ErrInvalidRound is returned for rounds with out-of-range fields.
var ErrInvalidRound = errors.New("invalid round")

// MaxScore is the highest score a round may report.
const MaxScore = 100_000

// Round is the ephemeral outcome of one finished mini-game round.
type Round struct {
	GameID         string  `json:"gameId"`
	Outcome        Outcome `json:"outcome"`
	Score          int     `json:"score"`
	ResponseTimeMs int     `json:"responseTimeMs"`
}

// Validate checks the round's fields. Unknown game IDs are not an error.
func (r Round) Validate() error {
	switch r.Outcome {
	case OutcomeWin, OutcomeLose, OutcomeDraw:
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidRound, r.Outcome)
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidRound, r.Score)
	}
	if r.Score > MaxScore {
		return fmt.Errorf("%w: score %d exceeds %d", ErrInvalidRound, r.Score, MaxScore)
	}
	if r.ResponseTimeMs < 0 {
		return fmt.Errorf("%w: negative response time %d", ErrInvalidRound, r.ResponseTimeMs)
	}
	return nil
}

// BaseXP returns the XP awarded for an outcome before the score bonus.
func BaseXP(o Outcome) int {
	switch o {
	case OutcomeWin:
		return 25
	case OutcomeDraw:
		return 15
	default:
		return 10
	}
}

// BonusXP returns the score bonus: one XP per ten points.
func BonusXP(score int) int {
	if score < 0 {
		return 0
	}
	return score / 10
}

// TotalXP returns base plus bonus XP for a round.
func TotalXP(o Outcome, score int) int {
	return BaseXP(o) + BonusXP(score)
}

// Delta maps skill names to the XP a round adds to them.
type Delta map[string]int

// Total returns the sum of all XP in the delta.
func (d Delta) Total() int {
	sum := 0
	for _, xp := range d {
		sum += xp
	}
	return sum
}

// Resolution describes how a round was resolved.
type Resolution struct {
	// Known is false when the game ID was not in the table and the
	// default bucket was used instead.
	Known   bool        `json:"known"`
	Skills  []string    `json:"skills"`
	TotalXP int         `json:"totalXp"`
	Mode    ScoringMode `json:"mode"`
}

// DefaultSkill is the bucket credited for unknown game IDs.
const DefaultSkill = "Logic"

// Resolver converts rounds into skill XP deltas.
type Resolver struct {
	mode         ScoringMode
	defaultSkill string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets the scoring mode.
func WithMode(m ScoringMode) Option {
	return func(r *Resolver) { r.mode = m }
}

// WithDefaultSkill sets the bucket used for unknown game IDs. An empty
// name makes unknown games resolve to an empty delta.
func WithDefaultSkill(name string) Option {
	return func(r *Resolver) { r.defaultSkill = name }
}

// NewResolver creates a resolver. Defaults: uniform scoring, Logic bucket.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{mode: ScoringUniform, defaultSkill: DefaultSkill}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the configured scoring mode.
func (r *Resolver) Mode() ScoringMode { return r.mode }

// Resolve computes the XP delta for a round. It has no side effects.
func (r *Resolver) Resolve(round Round) (Delta, Resolution) {
	total := TotalXP(round.Outcome, round.Score)
	res := Resolution{TotalXP: total, Mode: r.mode}

	g, ok := Get(round.GameID)
	if !ok {
		if r.defaultSkill == "" {
			return Delta{}, res
		}
		res.Skills = []string{r.defaultSkill}
		return Delta{r.defaultSkill: total}, res
	}

	res.Known = true
	res.Skills = g.Skills
	delta := make(Delta, len(g.Skills))
	for i, name := range g.Skills {
		xp := total
		if r.mode == ScoringPrimarySplit && i > 0 {
			xp = total / 2
		}
		delta[name] += xp
	}
	return delta, res
}
