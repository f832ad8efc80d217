package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/llm"
)

// Purpose tags LLM requests made by this package.
const Purpose = "career-insights"

// Generator produces additional insights beyond the templated ones.
type Generator interface {
	Generate(ctx context.Context, top []ledger.SkillView, matches []careers.Match) ([]Insight, error)
}

// GeneratorConfig holds request tuning for LLMGenerator.
type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns the settings used in production.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{MaxTokens: 500, Temperature: 0.7}
}

// LLMGenerator asks an LLM provider for insights.
type LLMGenerator struct {
	provider llm.Provider
	cfg      GeneratorConfig
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, cfg GeneratorConfig) *LLMGenerator {
	return &LLMGenerator{provider: provider, cfg: cfg}
}

// Payload is the data sent to the model.
type Payload struct {
	Skills     []PayloadSkill  `json:"skills"`
	TopCareers []PayloadCareer `json:"topCareers"`
}

type PayloadSkill struct {
	Name  string `json:"name"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
}

type PayloadCareer struct {
	Title           string `json:"title"`
	MatchPercentage int    `json:"matchPercentage"`
}

// NewPayload takes every given skill and the top three careers.
func NewPayload(top []ledger.SkillView, matches []careers.Match) Payload {
	p := Payload{
		Skills:     make([]PayloadSkill, 0, len(top)),
		TopCareers: make([]PayloadCareer, 0, 3),
	}
	for _, s := range top {
		p.Skills = append(p.Skills, PayloadSkill{Name: s.Name, XP: s.XP, Level: s.Level})
	}
	for _, m := range careers.Top(matches, 3) {
		p.TopCareers = append(p.TopCareers, PayloadCareer{Title: m.Career.Title, MatchPercentage: m.Percentage})
	}
	return p
}

type generatorOutput struct {
	Insights []Insight `json:"insights"`
}

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, top []ledger.SkillView, matches []careers.Match) ([]Insight, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	prompt, err := buildPrompt(NewPayload(top, matches))
	if err != nil {
		return nil, fmt.Errorf("build insight prompt: %w", err)
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	var out generatorOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse insights response: %w", err)
	}
	return out.Insights, nil
}

const systemPrompt = `You are an AI career advisor specializing in AI and technology careers. Provide specific, actionable insights based on user skill data.`

var promptTemplate = template.Must(template.New("insights").Parse(`Analyze this user's AI skills and provide personalized career insights.

User skills:
{{range .Skills}}- {{.Name}}: Level {{.Level}} ({{.XP}} XP)
{{end}}
Top career matches:
{{range .TopCareers}}- {{.Title}}: {{.MatchPercentage}}% match
{{end}}
Give 3-5 insights. Focus on:
1. The user's strongest skills and how they translate to career success
2. Specific skills to develop next for the top career matches
3. Emerging opportunities in AI fields
4. Personalized learning recommendations`))

func buildPrompt(p Payload) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}
