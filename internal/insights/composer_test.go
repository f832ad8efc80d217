package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/llm"
	"github.com/abhisek/careerquest/internal/metrics"
)

func generated() llm.MockResponse {
	return llm.MockJSON(map[string]any{
		"insights": []map[string]string{
			{"insight": "Pair your logic with a statistics course.", "type": "improvement", "priority": "high"},
			{"insight": "Data roles are hiring juniors with research habits.", "type": "opportunity", "priority": "low"},
		},
	})
}

func TestLLMGeneratorRequest(t *testing.T) {
	mock := llm.NewMockProvider(generated())
	gen := NewLLMGenerator(mock, DefaultGeneratorConfig())
	top, matches := fixture()

	got, err := gen.Generate(context.Background(), top, matches)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, TypeImprovement, got[0].Type)
	assert.Equal(t, PriorityLow, got[1].Priority)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Equal(t, Schema, req.Schema)
	assert.Equal(t, 500, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Contains(t, req.System, "AI career advisor")
	prompt := req.Messages[0].Content
	assert.Contains(t, prompt, "- Logic: Level 2 (120 XP)")
	assert.Contains(t, prompt, "- Data Scientist: 100% match")
	assert.NotContains(t, prompt, "AI Content Creator")
}

func TestComposerAppendsGenerated(t *testing.T) {
	m := metrics.NewManager()
	c := NewComposer(NewLLMGenerator(llm.NewMockProvider(generated()), DefaultGeneratorConfig()), nil, m)
	top, matches := fixture()

	got, ok := c.Generate(context.Background(), top, matches)
	require.True(t, ok)
	require.Len(t, got, 5)
	assert.Equal(t, Compose(top, matches), got[:3])
	assert.Equal(t, "Pair your logic with a statistics course.", got[3].Text)
}

func TestComposerFallback(t *testing.T) {
	tests := []struct {
		name       string
		reply      llm.MockResponse
		wantReason string
	}{
		{"provider down", llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}, "unavailable"},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{}}, "rate_limit"},
		{"malformed json", llm.MockResponse{Content: []byte(`{"insights": [`)}, "invalid_response"},
		{"schema violation", llm.MockJSON(map[string]any{"insights": []map[string]string{{"insight": "x", "type": "hype", "priority": "high"}}}), "invalid_response"},
		{"timeout", llm.MockResponse{Err: context.DeadlineExceeded}, "timeout"},
		{"other", llm.MockResponse{Err: errors.New("boom")}, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			gen := NewLLMGenerator(llm.NewMockProvider(tt.reply), DefaultGeneratorConfig())
			c := NewComposer(gen, zap.New(core), nil)
			top, matches := fixture()

			got, ok := c.Generate(context.Background(), top, matches)
			require.False(t, ok)
			require.Len(t, got, 4)
			assert.Equal(t, Fallback(), got[3])

			entries := logs.FilterMessage("insight generation failed, using fallback").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantReason, entries[0].ContextMap()["reason"])
		})
	}
}

func TestComposerWithoutGenerator(t *testing.T) {
	c := NewComposer(nil, nil, nil)
	top, matches := fixture()

	got, ok := c.Generate(context.Background(), top, matches)
	require.False(t, ok)
	require.Len(t, got, 4)
	assert.Equal(t, Fallback(), got[3])
	assert.True(t, strings.HasPrefix(got[0].Text, "Your strongest skill is Logic"))
}

func countFallbacks(ins []Insight) int {
	n := 0
	for _, in := range ins {
		if in == Fallback() {
			n++
		}
	}
	return n
}

func TestComposerZeroXPKeepsOneFallback(t *testing.T) {
	top := ledger.TopSkills(ledger.Ledger{}, 5)
	matches := careers.Default().Match(nil)

	tests := []struct {
		name string
		gen  Generator
	}{
		{"no generator", nil},
		{"failing generator", NewLLMGenerator(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), DefaultGeneratorConfig())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewComposer(tt.gen, nil, nil).Generate(context.Background(), top, matches)
			require.False(t, ok)
			assert.Equal(t, 1, countFallbacks(got))
			assert.Equal(t, Fallback(), got[0])
			assert.Len(t, got, 3)
		})
	}
}
