package skills

import (
	"strings"
	"testing"
)

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func validSet() []Skill {
	return []Skill{
		newSkill("A", CategoryCognitive),
		newSkill("B", CategoryAnalytical),
		newSkill("C", CategoryCreative),
		newSkill("D", CategorySocial),
		newSkill("E", CategoryTechnical),
	}
}

func TestValidateSkills_DetectsDuplicateName(t *testing.T) {
	set := append(validSet(), newSkill("A", CategoryCognitive))
	err := validateSkills(set)
	if err == nil {
		t.Fatal("expected error for duplicate name, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate skill name") {
		t.Errorf("error should mention duplicate name, got: %v", err)
	}
}

func TestValidateSkills_DetectsUnknownCategory(t *testing.T) {
	set := append(validSet(), newSkill("F", Category("musical")))
	err := validateSkills(set)
	if err == nil {
		t.Fatal("expected error for unknown category, got nil")
	}
	if !strings.Contains(err.Error(), "musical") {
		t.Errorf("error should mention the category, got: %v", err)
	}
}

func TestValidateSkills_DetectsEmptyCategory(t *testing.T) {
	set := validSet()[:4]
	err := validateSkills(set)
	if err == nil {
		t.Fatal("expected error for empty category, got nil")
	}
	if !strings.Contains(err.Error(), "technical") {
		t.Errorf("error should mention technical, got: %v", err)
	}
}

func TestValidateSkills_DetectsBadID(t *testing.T) {
	set := validSet()
	set[0].ID = "wrong"
	if err := validateSkills(set); err == nil {
		t.Fatal("expected error for mismatched ID, got nil")
	}
}
