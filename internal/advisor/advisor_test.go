package advisor

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/session"
	"github.com/abhisek/careerquest/internal/store"
)

// countingGenerator returns one insight per call, or err when set.
type countingGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *countingGenerator) Generate(_ context.Context, top []ledger.SkillView, _ []careers.Match) ([]insights.Insight, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return []insights.Insight{{
		Text:     "Keep practising " + top[0].Name + ".",
		Type:     insights.TypeImprovement,
		Priority: insights.PriorityLow,
	}}, nil
}

// ctxCheckingGenerator fails when called with a cancelled context.
type ctxCheckingGenerator struct{}

func (ctxCheckingGenerator) Generate(ctx context.Context, _ []ledger.SkillView, _ []careers.Match) ([]insights.Insight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []insights.Insight{{Text: "Generated.", Type: insights.TypeOpportunity, Priority: insights.PriorityLow}}, nil
}

func newLedger() *ledger.Service {
	return ledger.NewService(games.NewResolver(), ledger.NewMemoryRepo(), nil, nil)
}

func play(t *testing.T, l *ledger.Service, user, game string) {
	t.Helper()
	_, err := l.RecordRound(context.Background(), user, games.Round{GameID: game, Outcome: games.OutcomeWin, Score: 50})
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	l := newLedger()
	sessions := session.NewService(st.SessionRepo(), nil)
	gen := &countingGenerator{}
	a := New(l, insights.NewComposer(gen, nil, nil), WithSessions(sessions))

	play(t, l, "u1", "puzzle-duel")
	play(t, l, "u1", "pattern")
	_, err = sessions.Start(ctx, "u1", "puzzle-duel", session.UserStudent)
	require.NoError(t, err)

	d, err := a.Dashboard(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", d.UserID)
	assert.Equal(t, 120, d.TotalXP)
	assert.Len(t, d.TopSkills, 5)
	assert.Equal(t, "Logic", d.TopSkills[0].Name)
	assert.Equal(t, 30, d.TopSkills[0].XP)
	assert.Len(t, d.Skills, 16)
	assert.Len(t, d.Careers, 4)
	assert.Equal(t, "ai-engineer", d.Careers[0].Career.ID)
	assert.Equal(t, 80, d.Careers[0].Percentage)
	assert.Len(t, d.RecentSessions, 1)
	require.Len(t, d.Insights, 4)
	assert.Equal(t, "Keep practising Logic.", d.Insights[3].Text)
}

func TestDashboardCachesInsightsUntilLedgerChanges(t *testing.T) {
	ctx := context.Background()
	l := newLedger()
	gen := &countingGenerator{}
	a := New(l, insights.NewComposer(gen, nil, nil))

	play(t, l, "u1", "spot-ai")
	for range 3 {
		_, err := a.Dashboard(ctx, "u1")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, gen.calls.Load())

	_, err := a.Report(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen.calls.Load(), "report should reuse cached insights")

	play(t, l, "u1", "spot-ai")
	_, err = a.Dashboard(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestDashboardDoesNotCacheFallback(t *testing.T) {
	ctx := context.Background()
	l := newLedger()
	gen := &countingGenerator{err: errors.New("provider down")}
	a := New(l, insights.NewComposer(gen, nil, nil))
	play(t, l, "u1", "spot-ai")

	for range 2 {
		d, err := a.Dashboard(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, insights.Fallback(), d.Insights[len(d.Insights)-1])
	}
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestInsightsSurviveCallerCancellation(t *testing.T) {
	l := newLedger()
	a := New(l, insights.NewComposer(ctxCheckingGenerator{}, nil, nil))
	play(t, l, "u1", "pattern")

	led, err := l.Get(context.Background(), "u1")
	require.NoError(t, err)
	top := ledger.TopSkills(led, topSkillCount)
	matches := a.catalog.Match(ledger.EarnedSkillNames(led))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := a.insights(ctx, "u1", led, top, matches)

	require.NotEmpty(t, got)
	assert.Equal(t, "Generated.", got[len(got)-1].Text)
	assert.Equal(t, 1, a.cache.len())
}

func TestDashboardCacheDisabled(t *testing.T) {
	l := newLedger()
	gen := &countingGenerator{}
	a := New(l, insights.NewComposer(gen, nil, nil), WithCacheSize(0))
	play(t, l, "u1", "spot-ai")

	for range 2 {
		_, err := a.Dashboard(context.Background(), "u1")
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestDashboardConcurrent(t *testing.T) {
	l := newLedger()
	gen := &countingGenerator{}
	a := New(l, insights.NewComposer(gen, nil, nil))
	play(t, l, "u1", "story-battle")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := a.Dashboard(context.Background(), "u1")
			assert.NoError(t, err)
			assert.Len(t, d.Insights, 4)
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, gen.calls.Load(), int32(1))
}

func TestDashboardEmptyUser(t *testing.T) {
	a := New(newLedger(), insights.NewComposer(nil, nil, nil))

	_, err := a.Dashboard(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserRequired)
	_, err = a.Report(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserRequired)

	d, err := a.Dashboard(context.Background(), "newcomer")
	require.NoError(t, err)
	assert.Zero(t, d.TotalXP)
	assert.Equal(t, insights.Fallback(), d.Insights[0])
	assert.NotContains(t, d.Insights[1:], insights.Fallback())
	assert.Empty(t, d.RecentSessions)
}

func TestReport(t *testing.T) {
	l := newLedger()
	a := New(l, insights.NewComposer(&countingGenerator{}, nil, nil))
	a.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	play(t, l, "u1", "ethical-scenarios")

	r, err := a.Report(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "career-report-2026-10-16.json", r.FileName())
	require.Len(t, r.TopCareers, 3)
	assert.Equal(t, "ai-ethicist", r.TopCareers[0].Career.ID)
	assert.Equal(t, r.TopCareers[0].Career.NextSkills, r.Recommendations)
	assert.Len(t, r.Skills, 16)
}

func TestCustomCatalog(t *testing.T) {
	catalog := careers.Catalog{{ID: "solo", Title: "Solo", RequiredSkills: []string{"Creativity"}}}
	a := New(newLedger(), insights.NewComposer(nil, nil, nil), WithCatalog(catalog))

	d, err := a.Dashboard(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, d.Careers, 1)
	assert.Equal(t, "solo", d.Careers[0].Career.ID)
	assert.Equal(t, catalog, a.Catalog())
}
