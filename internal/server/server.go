// Package server exposes careerquest over HTTP with JSON bodies.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/advisor"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/metrics"
	"github.com/abhisek/careerquest/internal/session"
)

const (
	readTimeout       = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	// Dashboards may wait on the LLM.
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Deps are the services behind the routes.
type Deps struct {
	Ledger   *ledger.Service
	Sessions *session.Service
	Advisor  *advisor.Advisor
	Metrics  *metrics.Manager
	Logger   *zap.Logger
}

// Server wires routes to services.
type Server struct {
	deps Deps
	mux  *http.ServeMux
}

// New creates a Server with all routes registered.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Server{deps: deps, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("POST /v1/users/{user}/rounds", "rounds", s.handleRecordRound)
	s.handle("GET /v1/users/{user}/skills", "skills", s.handleSkills)
	s.handle("GET /v1/users/{user}/dashboard", "dashboard", s.handleDashboard)
	s.handle("GET /v1/users/{user}/report", "report", s.handleReport)
	s.handle("POST /v1/users/{user}/sessions", "session_start", s.handleStartSession)
	s.handle("GET /v1/users/{user}/sessions", "session_list", s.handleListSessions)
	s.handle("GET /v1/sessions/{id}", "session_get", s.handleGetSession)
	s.handle("POST /v1/sessions/{id}/answers", "session_answer", s.handleAnswer)
	s.handle("POST /v1/sessions/{id}/end", "session_end", s.handleEndSession)
	s.handle("GET /v1/careers", "careers", s.handleCareers)
	s.handle("GET /healthz", "healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.deps.Metrics.Handler())
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("starting HTTP server", zap.String("addr", l.Addr().String()))
		errc <- srv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.deps.Logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errc
	s.deps.Logger.Info("server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, l)
}
