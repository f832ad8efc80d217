package insights

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/llm"
	"github.com/abhisek/careerquest/internal/metrics"
)

// Composer combines templated insights with generated ones. Generation
// failures degrade to the static fallback and are never returned.
type Composer struct {
	gen     Generator
	logger  *zap.Logger
	metrics *metrics.Manager
}

// NewComposer creates a Composer. gen may be nil to disable generation.
func NewComposer(gen Generator, logger *zap.Logger, m *metrics.Manager) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{gen: gen, logger: logger, metrics: m}
}

// Generate returns the templated insights followed by the generated ones,
// or by the fallback insight when generation is disabled or fails. The
// boolean reports whether generated insights were included.
func (c *Composer) Generate(ctx context.Context, top []ledger.SkillView, matches []careers.Match) ([]Insight, bool) {
	out := Compose(top, matches)

	if c.gen == nil {
		c.metrics.InsightFallback("disabled")
		return withFallback(out), false
	}

	start := time.Now()
	generated, err := c.gen.Generate(ctx, top, matches)
	c.metrics.ObserveInsightLatency(time.Since(start))
	if err == nil && len(generated) == 0 {
		err = errors.New("generator returned no insights")
	}
	if err != nil {
		reason := fallbackReason(err)
		c.metrics.InsightFallback(reason)
		c.logger.Warn("insight generation failed, using fallback",
			zap.String("reason", reason),
			zap.Int("skills", len(top)),
			zap.Int("careers", len(matches)),
			zap.Error(err),
		)
		return withFallback(out), false
	}
	return append(out, generated...), true
}

// withFallback appends the fallback insight unless the templates already
// produced it.
func withFallback(out []Insight) []Insight {
	if slices.Contains(out, Fallback()) {
		return out
	}
	return append(out, Fallback())
}

func fallbackReason(err error) string {
	var (
		rateLimit *llm.ErrRateLimit
		invalid   *llm.ErrInvalidResponse
		maxTok    *llm.ErrMaxTokensExceeded
		unavail   *llm.ErrProviderUnavailable
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.As(err, &rateLimit):
		return "rate_limit"
	case errors.As(err, &invalid), errors.As(err, &maxTok):
		return "invalid_response"
	case errors.As(err, &unavail):
		return "unavailable"
	}
	return "error"
}
