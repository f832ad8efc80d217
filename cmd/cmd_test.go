package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/session"
)

// run executes the root command against db as user "tester". Flags keep
// their values between runs, so callers set every flag they depend on.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CAREERQUEST_LLM_PROVIDER", "none")
	t.Setenv("CAREERQUEST_LOG_LEVEL", "error")
	t.Setenv("CAREERQUEST_CONFIG", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append(args, "--db", db, "--user", "tester"))
	err := rootCmd.Execute()
	return out.String(), err
}

func newDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "careerquest.db")
}

func TestPlayCreditsSkills(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "play", "puzzle-duel", "--outcome", "win", "--score", "80", "--time", "0", "--json")
	require.NoError(t, err)

	var res ledger.RoundResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 66, res.XPGained)
	assert.Equal(t, 33, res.Ledger.XP("Logic"))
	assert.Equal(t, 33, res.Ledger.XP("Problem-Solving"))
	assert.True(t, res.Resolution.Known)

	out, err = run(t, db, "skills", "show", "logic", "--json")
	require.NoError(t, err)
	var view ledger.SkillView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Logic", view.Name)
	assert.Equal(t, 33, view.XP)
	assert.Equal(t, 1, view.Level)
}

func TestPlayRejectsBadOutcome(t *testing.T) {
	_, err := run(t, newDB(t), "play", "puzzle-duel", "--outcome", "forfeit", "--score", "0", "--time", "0", "--json=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown outcome")
}

func TestPlayStyledOutput(t *testing.T) {
	out, err := run(t, newDB(t), "play", "not-a-game", "--outcome", "lose", "--score", "0", "--time", "0", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "default skill bucket")
	assert.Contains(t, out, "+10 XP")
}

func TestCareersMatch(t *testing.T) {
	db := newDB(t)
	_, err := run(t, db, "play", "puzzle-duel", "--outcome", "win", "--score", "0", "--time", "0", "--json")
	require.NoError(t, err)

	out, err := run(t, db, "careers", "match", "--limit", "2", "--json")
	require.NoError(t, err)

	var matches []careers.Match
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 2)
	assert.GreaterOrEqual(t, matches[0].Percentage, matches[1].Percentage)
}

func TestCareersShowUnknown(t *testing.T) {
	_, err := run(t, newDB(t), "careers", "show", "astronaut", "--json")
	require.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "session", "start", "spot-ai", "--type", "adult", "--json")
	require.NoError(t, err)
	var s session.Session
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.NotEmpty(t, s.ID)
	assert.Equal(t, session.UserAdult, s.UserType)

	_, err = run(t, db, "session", "answer", s.ID, "-q", "1", "-a", "fake", "--correct", "--time", "1200", "--json")
	require.NoError(t, err)

	out, err = run(t, db, "session", "end", s.ID, "--json")
	require.NoError(t, err)
	var ended struct {
		Session session.Session `json:"session"`
		Summary session.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &ended))
	assert.True(t, ended.Session.Completed)
	assert.Equal(t, 1, ended.Session.Score)
	assert.Equal(t, 1, ended.Summary.TotalCorrect)

	_, err = run(t, db, "session", "end", s.ID, "--json")
	require.ErrorIs(t, err, session.ErrCompleted)

	out, err = run(t, db, "session", "list", "--limit", "10", "--json")
	require.NoError(t, err)
	var list []session.Session
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
}

func TestDashboard(t *testing.T) {
	db := newDB(t)
	_, err := run(t, db, "play", "puzzle-duel", "--outcome", "draw", "--score", "50", "--time", "0", "--json")
	require.NoError(t, err)

	out, err := run(t, db, "dashboard", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "tester's dashboard")
	assert.Contains(t, out, "Top skills")
	assert.Contains(t, out, "Insights")
}

func TestReportWritesFile(t *testing.T) {
	db := newDB(t)
	dir := t.TempDir()

	out, err := run(t, db, "report", "--out", dir, "--stdout=false", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "career-report-"))
}

func TestResetRequiresConfirmation(t *testing.T) {
	db := newDB(t)
	_, err := run(t, db, "play", "puzzle-duel", "--outcome", "win", "--score", "0", "--time", "0", "--json")
	require.NoError(t, err)

	_, err = run(t, db, "reset", "--yes=false", "--json=false")
	require.Error(t, err)

	_, err = run(t, db, "reset", "--yes", "--json=false")
	require.NoError(t, err)

	out, err := run(t, db, "skills", "show", "Logic", "--json")
	require.NoError(t, err)
	var view ledger.SkillView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Zero(t, view.XP)
}

func TestLLMCommandsEmpty(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "llm", "list", "--limit", "5", "--purpose", "")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = run(t, db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	_, err = run(t, db, "llm", "view", "42")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, newDB(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "careerquest (devel)\n", out)
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0, "$0.0000"},
		{0.0042, "$0.0042"},
		{1.5, "$1.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCost(tt.usd))
	}
}
