package ledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/careerquest/internal/skills"
)

func TestMergeIsPure(t *testing.T) {
	a := Ledger{"Logic": 25}
	b := Ledger{"Logic": 15, "Creativity": 10}

	got := Merge(a, b)
	want := Ledger{"Logic": 40, "Creativity": 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	if a["Logic"] != 25 || len(a) != 1 {
		t.Errorf("Merge mutated a: %v", a)
	}
	if b["Logic"] != 15 || len(b) != 2 {
		t.Errorf("Merge mutated b: %v", b)
	}
}

func TestMergeAlgebra(t *testing.T) {
	a := Ledger{"Logic": 25, "Research": 3}
	b := Ledger{"Logic": 10, "Creativity": 7}
	c := Ledger{"Creativity": 1, "Evaluation": 40}

	if diff := cmp.Diff(Merge(a, b), Merge(b, a)); diff != "" {
		t.Errorf("Merge not commutative:\n%s", diff)
	}
	if diff := cmp.Diff(Merge(Merge(a, b), c), Merge(a, Merge(b, c))); diff != "" {
		t.Errorf("Merge not associative:\n%s", diff)
	}
	if diff := cmp.Diff(a, Merge(a, nil)); diff != "" {
		t.Errorf("nil is not identity:\n%s", diff)
	}
}

func TestViewsCoversCatalog(t *testing.T) {
	views := Views(Ledger{"Logic": 250, "Unknown Skill": 999})
	if len(views) != len(skills.All()) {
		t.Fatalf("views = %d, want %d", len(views), len(skills.All()))
	}
	for i, v := range views {
		if v.Name != skills.All()[i].Name {
			t.Errorf("view[%d] = %s, want catalog order", i, v.Name)
		}
		if v.Name == "Logic" {
			if v.XP != 250 || v.Level != 3 || v.NextLevelXP != 300 {
				t.Errorf("Logic view = %+v", v)
			}
		} else if v.XP != 0 || v.Level != 1 || v.NextLevelXP != 100 {
			t.Errorf("%s view = %+v, want zero XP level 1", v.Name, v)
		}
	}
}

func TestTopSkills(t *testing.T) {
	l := Ledger{"Creativity": 50, "Logic": 90, "Research": 50}

	top := TopSkills(l, 4)
	var names []string
	for _, v := range top {
		names = append(names, v.Name)
	}
	// Creativity precedes Research in the catalog, and Media Literacy is
	// the first zero-XP skill.
	want := []string{"Logic", "Creativity", "Research", "Media Literacy"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("TopSkills mismatch (-want +got):\n%s", diff)
	}

	if got := TopSkills(l, 100); len(got) != len(skills.All()) {
		t.Errorf("TopSkills(100) = %d entries", len(got))
	}
}

func TestEarnedSkillNames(t *testing.T) {
	got := EarnedSkillNames(Ledger{"Logic": 10, "Media Literacy": 5, "Research": 0})
	want := []string{"Media Literacy", "Logic"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EarnedSkillNames mismatch (-want +got):\n%s", diff)
	}
	if got := EarnedSkillNames(nil); len(got) != 0 {
		t.Errorf("empty ledger earned %v", got)
	}
}

func TestCategoryTotals(t *testing.T) {
	totals := CategoryTotals(Ledger{"Logic": 10, "Evaluation": 5, "Creativity": 7})
	byCat := map[skills.Category]CategoryTotal{}
	for _, ct := range totals {
		byCat[ct.Category] = ct
	}
	if ct := byCat[skills.CategoryAnalytical]; ct.XP != 15 || ct.Skills != 4 {
		t.Errorf("analytical = %+v", ct)
	}
	if ct := byCat[skills.CategoryCreative]; ct.XP != 7 || ct.Skills != 1 {
		t.Errorf("creative = %+v", ct)
	}
	if totals[0].Category != skills.CategoryCognitive {
		t.Errorf("first category = %s, want cognitive", totals[0].Category)
	}
}

func TestLevelUps(t *testing.T) {
	before := Ledger{"Logic": 90, "Creativity": 10}
	after := Ledger{"Logic": 215, "Creativity": 35, "Research": 100}

	want := []LevelUp{
		{Skill: "Logic", From: 1, To: 3},
		{Skill: "Research", From: 1, To: 2},
	}
	if diff := cmp.Diff(want, LevelUps(before, after)); diff != "" {
		t.Errorf("LevelUps mismatch (-want +got):\n%s", diff)
	}
}
