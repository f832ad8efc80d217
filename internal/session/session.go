// Package session records individual game plays: who played which game,
// the answers given and the final score.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/store"
)

var (
	// ErrNotFound is returned for an unknown session ID.
	ErrNotFound = store.ErrSessionNotFound
	// ErrCompleted is returned when writing to an ended session.
	ErrCompleted = store.ErrSessionCompleted
	// ErrInvalid is returned for malformed input.
	ErrInvalid = errors.New("invalid session input")
)

// UserType is the audience a session was played as.
type UserType string

const (
	UserStudent UserType = "student"
	UserAdult   UserType = "adult"
)

// ParseUserType accepts "student" or "adult". An empty string is student.
func ParseUserType(s string) (UserType, error) {
	switch UserType(s) {
	case "", UserStudent:
		return UserStudent, nil
	case UserAdult:
		return UserAdult, nil
	}
	return "", fmt.Errorf("%w: user type %q (want student or adult)", ErrInvalid, s)
}

// Answer is one response within a session.
type Answer struct {
	QuestionID     int    `json:"questionId"`
	UserAnswer     string `json:"userAnswer"`
	Correct        bool   `json:"correct"`
	ResponseTimeMs int    `json:"responseTimeMs"`
}

// Session is a single play of a game.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	GameID      string     `json:"gameId"`
	UserType    UserType   `json:"userType"`
	StartedAt   time.Time  `json:"startedAt"`
	Answers     []Answer   `json:"answers"`
	Score       int        `json:"score"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Service manages sessions on top of a store.SessionRepo.
type Service struct {
	repo   store.SessionRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a Service.
func NewService(repo store.SessionRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Start opens a new session with a fresh ID.
func (s *Service) Start(ctx context.Context, userID, gameID string, userType UserType) (*Session, error) {
	if userID == "" || gameID == "" {
		return nil, fmt.Errorf("%w: user and game are required", ErrInvalid)
	}
	if _, err := ParseUserType(string(userType)); err != nil {
		return nil, err
	}
	if userType == "" {
		userType = UserStudent
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		GameID:    gameID,
		UserType:  userType,
		StartedAt: s.now().UTC().Truncate(time.Millisecond),
		Answers:   []Answer{},
	}
	if err := s.repo.Create(ctx, toRecord(sess)); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	s.logger.Debug("session started",
		zap.String("session", sess.ID),
		zap.String("user", userID),
		zap.String("game", gameID),
	)
	return sess, nil
}

// RecordAnswer appends an answer; a correct answer adds one to the score.
func (s *Service) RecordAnswer(ctx context.Context, sessionID string, a Answer) error {
	if a.ResponseTimeMs < 0 {
		return fmt.Errorf("%w: negative response time", ErrInvalid)
	}
	err := s.repo.AppendAnswer(ctx, sessionID, store.AnswerRecord{
		QuestionID:     a.QuestionID,
		UserAnswer:     a.UserAnswer,
		Correct:        a.Correct,
		ResponseTimeMs: a.ResponseTimeMs,
	})
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// End marks a session completed. Ending it twice returns ErrCompleted.
func (s *Service) End(ctx context.Context, sessionID string) (*Session, error) {
	if err := s.repo.Complete(ctx, sessionID, s.now()); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("session ended",
		zap.String("session", sess.ID),
		zap.Int("score", sess.Score),
		zap.Int("answers", len(sess.Answers)),
	)
	return sess, nil
}

// Get loads a session with its answers.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	rec, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return fromRecord(rec), nil
}

// List returns a user's sessions, newest first, without answers.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Session, error) {
	recs, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]Session, 0, len(recs))
	for i := range recs {
		out = append(out, *fromRecord(&recs[i]))
	}
	return out, nil
}

func toRecord(s *Session) store.SessionRecord {
	return store.SessionRecord{
		ID:          s.ID,
		UserID:      s.UserID,
		GameID:      s.GameID,
		UserType:    string(s.UserType),
		Score:       s.Score,
		Completed:   s.Completed,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
	}
}

func fromRecord(r *store.SessionRecord) *Session {
	s := &Session{
		ID:          r.ID,
		UserID:      r.UserID,
		GameID:      r.GameID,
		UserType:    UserType(r.UserType),
		StartedAt:   r.StartedAt,
		Score:       r.Score,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
		Answers:     make([]Answer, 0, len(r.Answers)),
	}
	for _, a := range r.Answers {
		s.Answers = append(s.Answers, Answer(a))
	}
	return s
}
