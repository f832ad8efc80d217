package insights

import "github.com/abhisek/careerquest/internal/llm"

// Schema is the JSON schema generated insights must satisfy.
var Schema = &llm.Schema{
	Name:        "career-insights",
	Description: "Personalised, actionable career insights for an AI-skills learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"insights": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"insight": map[string]any{
							"type":        "string",
							"minLength":   1,
							"description": "One specific, actionable sentence",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"strength", "improvement", "opportunity"},
						},
						"priority": map[string]any{
							"type": "string",
							"enum": []any{"high", "medium", "low"},
						},
					},
					"required":             []any{"insight", "type", "priority"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"insights"},
		"additionalProperties": false,
	},
}
