package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

const (
	tableLedger   = "skill_ledger"
	tableSessions = "game_sessions"
	tableAnswers  = "session_answers"
	tableLLM      = "llm_request_events"
)

// schemaDDL creates every table the store needs. Statements are idempotent
// so migrate can run on every Open.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS skill_ledger (
		user_id    TEXT    NOT NULL,
		skill      TEXT    NOT NULL,
		xp         INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (user_id, skill)
	)`,
	`CREATE TABLE IF NOT EXISTS game_sessions (
		id           TEXT    PRIMARY KEY,
		user_id      TEXT    NOT NULL,
		game_id      TEXT    NOT NULL,
		user_type    TEXT    NOT NULL,
		score        INTEGER NOT NULL DEFAULT 0,
		completed    INTEGER NOT NULL DEFAULT 0,
		started_at   INTEGER NOT NULL,
		completed_at INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS game_sessions_user_started
		ON game_sessions (user_id, started_at)`,
	`CREATE TABLE IF NOT EXISTS session_answers (
		session_id       TEXT    NOT NULL REFERENCES game_sessions (id) ON DELETE CASCADE,
		seq              INTEGER NOT NULL,
		question_id      INTEGER NOT NULL,
		user_answer      TEXT    NOT NULL,
		correct          INTEGER NOT NULL,
		response_time_ms INTEGER NOT NULL,
		PRIMARY KEY (session_id, seq)
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose
		ON llm_request_events (purpose)`,
}

func migrate(ctx context.Context, eq dialect.ExecQuerier) error {
	for _, stmt := range schemaDDL {
		if err := eq.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
