package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned when a session ID has no record.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionCompleted is returned when writing to a finished session.
	ErrSessionCompleted = errors.New("session already completed")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// LedgerRepo persists per-user skill XP totals.
type LedgerRepo interface {
	// Get returns the user's XP by skill name. Unknown users yield an
	// empty map, not an error.
	Get(ctx context.Context, userID string) (map[string]int, error)

	// Merge adds delta to the user's totals with a field-level increment
	// per skill and returns the updated totals. Concurrent merges for the
	// same user do not lose updates.
	Merge(ctx context.Context, userID string, delta map[string]int) (map[string]int, error)

	// Reset deletes every ledger row for the user.
	Reset(ctx context.Context, userID string) error

	// Users lists user IDs that have ledger rows, sorted.
	Users(ctx context.Context) ([]string, error)
}

// AnswerRecord is one answered question within a game session.
type AnswerRecord struct {
	QuestionID     int    `json:"questionId"`
	UserAnswer     string `json:"userAnswer"`
	Correct        bool   `json:"correct"`
	ResponseTimeMs int    `json:"responseTimeMs"`
}

// SessionRecord is the persisted form of a game session.
type SessionRecord struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	GameID      string         `json:"gameId"`
	UserType    string         `json:"userType"`
	Score       int            `json:"score"`
	Completed   bool           `json:"completed"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Answers     []AnswerRecord `json:"answers"`
}

// SessionRepo stores game sessions and their append-only answer lists.
type SessionRepo interface {
	// Create inserts a new, open session.
	Create(ctx context.Context, rec SessionRecord) error

	// AppendAnswer adds an answer and bumps the score when it is correct.
	// Returns ErrSessionNotFound or ErrSessionCompleted.
	AppendAnswer(ctx context.Context, sessionID string, answer AnswerRecord) error

	// Complete marks the session finished at the given time.
	// Returns ErrSessionNotFound or ErrSessionCompleted.
	Complete(ctx context.Context, sessionID string, at time.Time) error

	// Get returns a session with its answers, or nil if none exists.
	Get(ctx context.Context, sessionID string) (*SessionRecord, error)

	// ListByUser returns the user's most recent sessions first, without answers.
	ListByUser(ctx context.Context, userID string, limit int) ([]SessionRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
