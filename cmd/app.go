package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/advisor"
	"github.com/abhisek/careerquest/internal/careers"
	"github.com/abhisek/careerquest/internal/config"
	"github.com/abhisek/careerquest/internal/insights"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/llm"
	"github.com/abhisek/careerquest/internal/logging"
	"github.com/abhisek/careerquest/internal/metrics"
	"github.com/abhisek/careerquest/internal/session"
	"github.com/abhisek/careerquest/internal/store"
)

// app is the set of services one command invocation works with.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	metrics  *metrics.Manager
	ledger   *ledger.Service
	sessions *session.Service
	advisor  *advisor.Advisor

	user string
	json bool
	out  io.Writer
}

// openApp loads configuration, opens the store and builds every service.
// Callers must Close the result.
func openApp(cmd *cobra.Command) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	catalog := careers.Default()
	if cfg.CareersFile != "" {
		catalog, err = careers.LoadFile(cfg.CareersFile)
		if err != nil {
			st.Close()
			return nil, err
		}
		logger.Info("career catalog loaded",
			zap.String("file", cfg.CareersFile),
			zap.Int("careers", len(catalog)),
		)
	}

	m := metrics.NewManager(metrics.WithProcessCollectors())
	ledgers := ledger.NewService(cfg.Resolver(), st.LedgerRepo(), logger, m)
	sessions := session.NewService(st.SessionRepo(), logger)

	// The app works without a provider; insights fall back to templates.
	var gen insights.Generator
	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM(), st.EventRepo(), logger)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Debug("LLM provider not configured, AI insights disabled")
	case err != nil:
		logger.Warn("LLM provider unavailable, AI insights disabled", zap.Error(err))
	default:
		logger.Debug("LLM provider ready", zap.String("model", provider.ModelID()))
		gen = insights.NewLLMGenerator(provider, insights.DefaultGeneratorConfig())
	}

	adv := advisor.New(ledgers, insights.NewComposer(gen, logger, m),
		advisor.WithSessions(sessions),
		advisor.WithCatalog(catalog),
		advisor.WithLogger(logger),
		advisor.WithCacheSize(cfg.InsightCacheSize),
		advisor.WithRecentSessions(cfg.RecentSessions),
	)

	user, _ := cmd.Flags().GetString("user")
	asJSON, _ := cmd.Flags().GetBool("json")
	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		metrics:  m,
		ledger:   ledgers,
		sessions: sessions,
		advisor:  adv,
		user:     user,
		json:     asJSON,
		out:      cmd.OutOrStdout(),
	}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the db config key (CAREERQUEST_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens only the database, for commands that need no services.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
