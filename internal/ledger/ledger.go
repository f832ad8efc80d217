package ledger

import (
	"maps"
	"slices"
	"sort"

	"github.com/abhisek/careerquest/internal/skills"
)

// Ledger maps skill names to accumulated XP. Missing keys mean 0 XP.
type Ledger map[string]int

// Clone returns an independent copy. A nil ledger clones to an empty one.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	maps.Copy(out, l)
	return out
}

// XP returns the XP for a skill name.
func (l Ledger) XP(name string) int {
	return l[name]
}

// Total returns the XP summed over all skills.
func (l Ledger) Total() int {
	sum := 0
	for _, xp := range l {
		sum += xp
	}
	return sum
}

// Merge returns the union of a and b with overlapping XP summed. Neither
// input is modified. Merge is associative and commutative.
func Merge(a, b Ledger) Ledger {
	out := a.Clone()
	for name, xp := range b {
		out[name] += xp
	}
	return out
}

// SkillView is a catalog skill joined with a user's XP.
type SkillView struct {
	skills.Skill
	XP          int `json:"xp"`
	Level       int `json:"level"`
	NextLevelXP int `json:"nextLevelXp"`
}

func newView(s skills.Skill, xp int) SkillView {
	return SkillView{
		Skill:       s,
		XP:          xp,
		Level:       skills.Level(xp),
		NextLevelXP: skills.NextLevelXP(xp),
	}
}

// Views returns every catalog skill with the ledger's XP, in catalog order.
// Ledger keys outside the catalog are ignored.
func Views(l Ledger) []SkillView {
	all := skills.All()
	out := make([]SkillView, len(all))
	for i, s := range all {
		out[i] = newView(s, l[s.Name])
	}
	return out
}

// TopSkills returns up to n skills by XP descending. Ties keep catalog order.
func TopSkills(l Ledger, n int) []SkillView {
	views := Views(l)
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].XP > views[j].XP
	})
	if n >= 0 && n < len(views) {
		views = views[:n]
	}
	return views
}

// EarnedSkillNames returns catalog skills with XP above zero, in catalog order.
func EarnedSkillNames(l Ledger) []string {
	var names []string
	for _, s := range skills.All() {
		if l[s.Name] > 0 {
			names = append(names, s.Name)
		}
	}
	return names
}

// CategoryTotal is the XP summed over one category.
type CategoryTotal struct {
	Category skills.Category `json:"category"`
	XP       int             `json:"xp"`
	Skills   int             `json:"skills"`
}

// CategoryTotals sums XP per category in category display order.
func CategoryTotals(l Ledger) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(skills.AllCategories()))
	for _, cat := range skills.AllCategories() {
		ct := CategoryTotal{Category: cat}
		for _, s := range skills.ByCategory(cat) {
			ct.XP += l[s.Name]
			ct.Skills++
		}
		out = append(out, ct)
	}
	return out
}

// LevelUp records a skill crossing one or more level boundaries.
type LevelUp struct {
	Skill string `json:"skill"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// LevelUps compares two ledgers and returns skills whose level rose,
// sorted by skill name for stable output.
func LevelUps(before, after Ledger) []LevelUp {
	var ups []LevelUp
	for _, name := range slices.Sorted(maps.Keys(after)) {
		from, to := skills.Level(before[name]), skills.Level(after[name])
		if to > from {
			ups = append(ups, LevelUp{Skill: name, From: from, To: to})
		}
	}
	return ups
}
