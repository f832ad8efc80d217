package careers

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchSpecExample(t *testing.T) {
	// Logic and Problem-Solving cover 2 of ai-engineer's 5 required skills.
	matches := Default().Match([]string{"Logic", "Problem-Solving"})

	byID := map[string]Match{}
	for _, m := range matches {
		byID[m.Career.ID] = m
	}

	ai := byID["ai-engineer"]
	if ai.Percentage != 40 {
		t.Errorf("ai-engineer = %d%%, want 40%%", ai.Percentage)
	}
	if diff := cmp.Diff([]string{"Logic", "Problem-Solving"}, ai.MatchedSkills); diff != "" {
		t.Errorf("matched (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Analytical Thinking", "Intro to ML", "Applied AI"}, ai.MissingSkills); diff != "" {
		t.Errorf("missing (-want +got):\n%s", diff)
	}

	if got := byID["data-scientist"].Percentage; got != 50 {
		t.Errorf("data-scientist = %d%%, want 50%%", got)
	}
	if matches[0].Career.ID != "data-scientist" {
		t.Errorf("top match = %s, want data-scientist", matches[0].Career.ID)
	}
}

func TestMatchEmptySkillsKeepsCatalogOrder(t *testing.T) {
	matches := Default().Match(nil)

	var ids []string
	for _, m := range matches {
		if m.Percentage != 0 {
			t.Errorf("%s = %d%%, want 0", m.Career.ID, m.Percentage)
		}
		ids = append(ids, m.Career.ID)
	}
	want := []string{"ai-engineer", "content-creator", "ai-ethicist", "data-scientist"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestMatchIsSortedAndIdempotent(t *testing.T) {
	cat := Default()
	user := []string{"Communication", "Research", "Creativity", "Critical Thinking"}

	first := cat.Match(user)
	second := cat.Match(user)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Match not idempotent:\n%s", diff)
	}
	for i := 1; i < len(first); i++ {
		if first[i].Percentage > first[i-1].Percentage {
			t.Errorf("not sorted at %d: %d > %d", i, first[i].Percentage, first[i-1].Percentage)
		}
	}
	if diff := cmp.Diff(Default(), cat); diff != "" {
		t.Errorf("catalog mutated:\n%s", diff)
	}
	if len(user) != 4 || user[0] != "Communication" {
		t.Errorf("user skills mutated: %v", user)
	}
}

func TestMatchTiesKeepCatalogOrder(t *testing.T) {
	cat := Catalog{
		{ID: "b", Title: "B", RequiredSkills: []string{"Logic", "Research"}},
		{ID: "a", Title: "A", RequiredSkills: []string{"Logic", "Creativity"}},
		{ID: "c", Title: "C", RequiredSkills: []string{"Logic"}},
	}
	matches := cat.Match([]string{"Logic"})

	var ids []string
	for _, m := range matches {
		ids = append(ids, m.Career.ID)
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, ids); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		matched, required, want int
	}{
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds away from zero
		{3, 8, 38}, // 37.5
		{5, 5, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.matched, tt.required); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.matched, tt.required, got, tt.want)
		}
	}
}

func TestMatchEmptyRequirementsIsZero(t *testing.T) {
	matches := Catalog{{ID: "x", Title: "X"}}.Match([]string{"Logic"})
	if matches[0].Percentage != 0 {
		t.Errorf("empty requirements = %d%%, want 0", matches[0].Percentage)
	}
}

func TestTop(t *testing.T) {
	matches := Default().Match(nil)
	if got := len(Top(matches, 3)); got != 3 {
		t.Errorf("Top(3) = %d", got)
	}
	if got := len(Top(matches, 10)); got != 4 {
		t.Errorf("Top(10) = %d", got)
	}
}
