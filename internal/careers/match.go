package careers

import (
	"math"
	"sort"
)

// Match is a career scored against a user's skill set.
type Match struct {
	Career        Career   `json:"career"`
	Percentage    int      `json:"matchPercentage"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// Match scores every career in the catalog against userSkills and returns
// the results by percentage descending. Equal percentages keep catalog
// order. Neither argument is modified.
func (c Catalog) Match(userSkills []string) []Match {
	have := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		have[s] = struct{}{}
	}

	out := make([]Match, 0, len(c))
	for _, career := range c {
		m := Match{
			Career:        career.clone(),
			MatchedSkills: []string{},
			MissingSkills: []string{},
		}
		for _, req := range career.RequiredSkills {
			if _, ok := have[req]; ok {
				m.MatchedSkills = append(m.MatchedSkills, req)
			} else {
				m.MissingSkills = append(m.MissingSkills, req)
			}
		}
		m.Percentage = Percentage(len(m.MatchedSkills), len(career.RequiredSkills))
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

// Percentage returns 100*matched/required rounded half away from zero.
// A career with no required skills matches 0%.
func Percentage(matched, required int) int {
	if required <= 0 {
		return 0
	}
	return int(math.Round(float64(matched) * 100 / float64(required)))
}

// Top returns the first n matches, or all of them if there are fewer.
func Top(matches []Match, n int) []Match {
	if n < len(matches) {
		return matches[:n]
	}
	return matches
}
