// Package advisor assembles per-user dashboards and career reports from
// the ledger, session history, career catalog and insight composer.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/session"
)

// ErrUserRequired is returned for an empty user ID.
var ErrUserRequired = errors.New("user id is required")

const (
	topSkillCount        = 5
	defaultCacheSize     = 8
	defaultRecentSession = 5
)

// Dashboard is everything shown on a user's overview.
type Dashboard struct {
	UserID         string                 `json:"userId"`
	TotalXP        int                    `json:"totalXp"`
	Skills         []ledger.SkillView     `json:"skills"`
	TopSkills      []ledger.SkillView     `json:"topSkills"`
	Categories     []ledger.CategoryTotal `json:"categories"`
	Careers        []careers.Match        `json:"careers"`
	Insights       []insights.Insight     `json:"insights"`
	RecentSessions []session.Session      `json:"recentSessions"`
}

// Advisor builds dashboards and reports.
type Advisor struct {
	ledger   *ledger.Service
	sessions *session.Service
	catalog  careers.Catalog
	composer *insights.Composer
	logger   *zap.Logger

	cache  *insightCache
	flight singleflight.Group
	recent int
	now    func() time.Time
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithSessions includes recent sessions in dashboards.
func WithSessions(s *session.Service) Option {
	return func(a *Advisor) { a.sessions = s }
}

// WithCatalog replaces the built-in career catalog.
func WithCatalog(c careers.Catalog) Option {
	return func(a *Advisor) { a.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Advisor) { a.logger = l }
}

// WithCacheSize bounds the insight cache to n users. Zero disables it.
func WithCacheSize(n int) Option {
	return func(a *Advisor) { a.cache = newInsightCache(n) }
}

// WithRecentSessions sets how many sessions a dashboard lists.
func WithRecentSessions(n int) Option {
	return func(a *Advisor) { a.recent = n }
}

// New creates an Advisor. composer is required.
func New(l *ledger.Service, composer *insights.Composer, opts ...Option) *Advisor {
	a := &Advisor{
		ledger:   l,
		composer: composer,
		catalog:  careers.Default(),
		logger:   zap.NewNop(),
		cache:    newInsightCache(defaultCacheSize),
		recent:   defaultRecentSession,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Catalog returns the career catalog in use.
func (a *Advisor) Catalog() careers.Catalog { return a.catalog }

// Dashboard loads the user's ledger and recent sessions concurrently and
// derives skills, career matches and insights from them.
func (a *Advisor) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	var (
		l      ledger.Ledger
		recent []session.Session
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		l, err = a.ledger.Get(gctx, userID)
		return err
	})
	if a.sessions != nil && a.recent > 0 {
		g.Go(func() error {
			var err error
			recent, err = a.sessions.List(gctx, userID, a.recent)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	if recent == nil {
		recent = []session.Session{}
	}

	top := ledger.TopSkills(l, topSkillCount)
	matches := a.catalog.Match(ledger.EarnedSkillNames(l))
	return &Dashboard{
		UserID:         userID,
		TotalXP:        l.Total(),
		Skills:         ledger.Views(l),
		TopSkills:      top,
		Categories:     ledger.CategoryTotals(l),
		Careers:        matches,
		Insights:       a.insights(ctx, userID, l, top, matches),
		RecentSessions: recent,
	}, nil
}

// Report builds the exportable career report for a user.
func (a *Advisor) Report(ctx context.Context, userID string) (insights.Report, error) {
	if userID == "" {
		return insights.Report{}, ErrUserRequired
	}
	l, err := a.ledger.Get(ctx, userID)
	if err != nil {
		return insights.Report{}, fmt.Errorf("build report: %w", err)
	}
	top := ledger.TopSkills(l, topSkillCount)
	matches := a.catalog.Match(ledger.EarnedSkillNames(l))
	ins := a.insights(ctx, userID, l, top, matches)
	return insights.NewReport(a.now(), ledger.Views(l), matches, ins), nil
}

// insights returns cached insights while the ledger is unchanged.
// Concurrent requests for the same user and ledger share one generation.
func (a *Advisor) insights(ctx context.Context, userID string, l ledger.Ledger, top []ledger.SkillView, matches []careers.Match) []insights.Insight {
	fp := fingerprint(l)
	if cached, ok := a.cache.get(userID, fp); ok {
		a.logger.Debug("insight cache hit", zap.String("user", userID))
		return cached
	}

	key := userID + "/" + strconv.FormatUint(fp, 16)
	// The result is shared by every waiter, so one caller going away must
	// not cancel it. The provider's timeout still bounds the call.
	shared := context.WithoutCancel(ctx)
	v, _, _ := a.flight.Do(key, func() (any, error) {
		ins, generated := a.composer.Generate(shared, top, matches)
		if generated {
			a.cache.put(userID, fp, ins)
		}
		return ins, nil
	})
	return slices.Clone(v.([]insights.Insight))
}
