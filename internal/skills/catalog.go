package skills

import (
	"fmt"
	"slices"
)

// catalog holds the fixed skill set with precomputed indices.
type catalog struct {
	skills     []Skill
	byName     map[string]int
	byID       map[string]int
	byCategory map[Category][]Skill
}

// c is the package-level catalog, built from seedSkills in init.
var c *catalog

func init() {
	c = buildCatalog(seedSkills)
}

func buildCatalog(skills []Skill) *catalog {
	cat := &catalog{
		skills:     skills,
		byName:     make(map[string]int, len(skills)),
		byID:       make(map[string]int, len(skills)),
		byCategory: make(map[Category][]Skill),
	}
	for i, s := range skills {
		cat.byName[s.Name] = i
		cat.byID[s.ID] = i
		cat.byCategory[s.Category] = append(cat.byCategory[s.Category], s)
	}
	return cat
}

// seedSkills is the catalog in display order. Order matters: it breaks
// ties wherever skills are ranked.
var seedSkills = []Skill{
	newSkill("Media Literacy", CategoryCognitive),
	newSkill("Critical Thinking", CategoryCognitive),
	newSkill("Logic", CategoryAnalytical),
	newSkill("Problem-Solving", CategoryAnalytical),
	newSkill("Creativity", CategoryCreative),
	newSkill("Communication", CategorySocial),
	newSkill("Research", CategoryCognitive),
	newSkill("Critical Reasoning", CategoryCognitive),
	newSkill("Knowledge Depth", CategoryCognitive),
	newSkill("Analytical Thinking", CategoryAnalytical),
	newSkill("Intro to ML", CategoryTechnical),
	newSkill("Prompt Engineering", CategoryTechnical),
	newSkill("Applied AI", CategoryTechnical),
	newSkill("Multi-Tool Adaptability", CategoryTechnical),
	newSkill("Evaluation", CategoryAnalytical),
	newSkill("Ethical Decision-Making", CategorySocial),
}

func newSkill(name string, cat Category) Skill {
	return Skill{ID: Slug(name), Name: name, Category: cat}
}

// All returns every skill in catalog order.
func All() []Skill {
	return slices.Clone(c.skills)
}

// Names returns every skill name in catalog order.
func Names() []string {
	names := make([]string, len(c.skills))
	for i, s := range c.skills {
		names[i] = s.Name
	}
	return names
}

// Get returns a skill by name, or error if not found.
func Get(name string) (Skill, error) {
	i, ok := c.byName[name]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", name)
	}
	return c.skills[i], nil
}

// GetByID returns a skill by its slug ID, or error if not found.
func GetByID(id string) (Skill, error) {
	i, ok := c.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return c.skills[i], nil
}

// Lookup resolves either a skill name or a skill ID.
func Lookup(key string) (Skill, error) {
	if s, err := Get(key); err == nil {
		return s, nil
	}
	return GetByID(key)
}

// Exists reports whether name is a catalog skill name.
func Exists(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Index returns the catalog position of a skill name, or -1 if unknown.
func Index(name string) int {
	i, ok := c.byName[name]
	if !ok {
		return -1
	}
	return i
}

// ByCategory returns the skills of one category in catalog order.
func ByCategory(cat Category) []Skill {
	return slices.Clone(c.byCategory[cat])
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateSkills(c.skills)
}
