package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/metrics"
)

// Repository persists ledgers per user. Merge must apply the delta as a
// field-level increment so concurrent rounds for one user are not lost.
type Repository interface {
	Get(ctx context.Context, userID string) (map[string]int, error)
	Merge(ctx context.Context, userID string, delta map[string]int) (map[string]int, error)
	Reset(ctx context.Context, userID string) error
}

// RoundResult is what recording one round produced.
type RoundResult struct {
	UserID     string           `json:"userId"`
	Round      games.Round      `json:"round"`
	Delta      games.Delta      `json:"delta"`
	Resolution games.Resolution `json:"resolution"`
	Ledger     Ledger           `json:"ledger"`
	LevelUps   []LevelUp        `json:"levelUps,omitempty"`
	XPGained   int              `json:"xpGained"`
}

// Service records rounds into the ledger.
type Service struct {
	resolver *games.Resolver
	repo     Repository
	logger   *zap.Logger
	metrics  *metrics.Manager
}

// NewService creates a ledger service. logger and m may be nil.
func NewService(resolver *games.Resolver, repo Repository, logger *zap.Logger, m *metrics.Manager) *Service {
	if resolver == nil {
		resolver = games.NewResolver()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		repo:     repo,
		logger:   logger,
		metrics:  m,
	}
}

// Resolver returns the resolver rounds are scored with.
func (s *Service) Resolver() *games.Resolver {
	return s.resolver
}

// RecordRound resolves a round, merges its delta into the user's ledger
// and reports any level-ups. Storage errors are logged and returned
// without retry.
func (s *Service) RecordRound(ctx context.Context, userID string, round games.Round) (*RoundResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", games.ErrInvalidRound)
	}
	if err := round.Validate(); err != nil {
		return nil, err
	}

	delta, res := s.resolver.Resolve(round)
	if !res.Known {
		s.logger.Warn("unknown game id, crediting default bucket",
			zap.String("user", userID),
			zap.String("game", round.GameID),
			zap.Strings("skills", res.Skills),
		)
	}
	label := metrics.UnknownGameLabel
	if g, ok := games.Get(round.GameID); ok {
		label = g.ID
	}
	s.metrics.RoundRecorded(label, string(round.Outcome), res.Known)

	after, err := s.repo.Merge(ctx, userID, delta)
	if err != nil {
		s.metrics.PersistenceError("ledger_merge")
		s.logger.Error("ledger merge failed",
			zap.String("user", userID),
			zap.String("game", round.GameID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("merge ledger: %w", err)
	}
	s.metrics.XPAwarded(delta)

	// Pre-round totals are the merged totals minus the delta.
	before := Ledger(after).Clone()
	for name, xp := range delta {
		before[name] -= xp
	}

	return &RoundResult{
		UserID:     userID,
		Round:      round,
		Delta:      delta,
		Resolution: res,
		Ledger:     Ledger(after),
		LevelUps:   LevelUps(before, Ledger(after)),
		XPGained:   delta.Total(),
	}, nil
}

// Get returns the user's ledger.
func (s *Service) Get(ctx context.Context, userID string) (Ledger, error) {
	l, err := s.repo.Get(ctx, userID)
	if err != nil {
		s.metrics.PersistenceError("ledger_get")
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return Ledger(l), nil
}

// Reset clears the user's ledger.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := s.repo.Reset(ctx, userID); err != nil {
		s.metrics.PersistenceError("ledger_reset")
		return fmt.Errorf("reset ledger: %w", err)
	}
	s.logger.Info("ledger reset", zap.String("user", userID))
	return nil
}
