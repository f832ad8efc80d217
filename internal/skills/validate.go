package skills

import (
	"fmt"
	"strings"
)

// validateSkills performs all structural checks on the given skill set.
// Returns a combined error describing all problems found, or nil if valid.
func validateSkills(skills []Skill) error {
	var errs []string

	names := make(map[string]bool, len(skills))
	ids := make(map[string]bool, len(skills))
	populated := make(map[Category]bool)

	for _, s := range skills {
		if s.Name == "" {
			errs = append(errs, "skill with empty name")
			continue
		}
		if names[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate skill name: %q", s.Name))
		}
		names[s.Name] = true

		if s.ID != Slug(s.Name) {
			errs = append(errs, fmt.Sprintf("skill %q has ID %q, want %q", s.Name, s.ID, Slug(s.Name)))
		}
		if ids[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		ids[s.ID] = true

		if !s.Category.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q has unknown category %q", s.Name, s.Category))
		}
		populated[s.Category] = true
	}

	// Every declared category needs at least one skill.
	for _, cat := range AllCategories() {
		if !populated[cat] {
			errs = append(errs, fmt.Sprintf("category %q has no skills", cat))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
