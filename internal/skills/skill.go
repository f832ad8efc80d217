package skills

import "strings"

// Category groups skills by the kind of thinking they train.
type Category string

const (
	CategoryCognitive  Category = "cognitive"
	CategoryAnalytical Category = "analytical"
	CategoryCreative   Category = "creative"
	CategorySocial     Category = "social"
	CategoryTechnical  Category = "technical"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryCognitive,
		CategoryAnalytical,
		CategoryCreative,
		CategorySocial,
		CategoryTechnical,
	}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryCognitive:
		return "Cognitive"
	case CategoryAnalytical:
		return "Analytical"
	case CategoryCreative:
		return "Creative"
	case CategorySocial:
		return "Social"
	case CategoryTechnical:
		return "Technical"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Skill is a single trainable skill. Name is the ledger key.
type Skill struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 100

// Level derives the level for an XP total. Levels start at 1.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// NextLevelXP returns the XP total at which the next level is reached.
func NextLevelXP(xp int) int {
	return Level(xp) * XPPerLevel
}

// LevelProgress returns how far into the current level xp is (0..XPPerLevel-1).
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// Slug converts a skill name into its ID form: lower case with runs of
// whitespace replaced by a single dash.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
