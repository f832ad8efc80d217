package insights

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/skills"
)

// Report is the exportable career summary.
type Report struct {
	GeneratedAt     time.Time       `json:"generatedAt"`
	Skills          []ReportSkill   `json:"skills"`
	TopCareers      []careers.Match `json:"topCareers"`
	Insights        []Insight       `json:"insights"`
	Recommendations []string        `json:"recommendations"`
}

type ReportSkill struct {
	Name     string          `json:"name"`
	Level    int             `json:"level"`
	XP       int             `json:"xp"`
	Category skills.Category `json:"category"`
}

// NewReport assembles a report. matches must already be sorted; the
// recommendations are the best match's next skills.
func NewReport(now time.Time, views []ledger.SkillView, matches []careers.Match, insights []Insight) Report {
	r := Report{
		GeneratedAt:     now.UTC(),
		Skills:          make([]ReportSkill, 0, len(views)),
		TopCareers:      careers.Top(matches, 3),
		Insights:        insights,
		Recommendations: []string{},
	}
	for _, v := range views {
		r.Skills = append(r.Skills, ReportSkill{Name: v.Name, Level: v.Level, XP: v.XP, Category: v.Category})
	}
	if len(matches) > 0 && len(matches[0].Career.NextSkills) > 0 {
		r.Recommendations = append(r.Recommendations, matches[0].Career.NextSkills...)
	}
	if r.Insights == nil {
		r.Insights = []Insight{}
	}
	return r
}

// FileName is the conventional export name for a report generated at t.
func (r Report) FileName() string {
	return fmt.Sprintf("career-report-%s.json", r.GeneratedAt.Format(time.DateOnly))
}

// MarshalIndent renders the report as two-space indented JSON.
func (r Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteFile writes the report into dir under FileName and returns the
// full path.
func (r Report) WriteFile(dir string) (string, error) {
	data, err := r.MarshalIndent()
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	path := filepath.Join(dir, r.FileName())
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
