package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/abhisek/careerquest/internal/advisor"
	"github.com/abhisek/careerquest/internal/games"
	"github.com/abhisek/careerquest/internal/ledger"
	"github.com/abhisek/careerquest/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

type skillsResponse struct {
	UserID     string                 `json:"userId"`
	TotalXP    int                    `json:"totalXp"`
	Skills     []ledger.SkillView     `json:"skills"`
	Categories []ledger.CategoryTotal `json:"categories"`
}

type startSessionRequest struct {
	GameID   string `json:"gameId"`
	UserType string `json:"userType"`
}

type endSessionResponse struct {
	Session *session.Session `json:"session"`
	Summary session.Summary  `json:"summary"`
}

func (s *Server) handleRecordRound(w http.ResponseWriter, r *http.Request) {
	var round games.Round
	if err := decodeJSON(w, r, &round); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.deps.Ledger.RecordRound(r.Context(), r.PathValue("user"), round)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	l, err := s.deps.Ledger.Get(r.Context(), user)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, skillsResponse{
		UserID:     user,
		TotalXP:    l.Total(),
		Skills:     ledger.Views(l),
		Categories: ledger.CategoryTotals(l),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Advisor.Dashboard(r.Context(), r.PathValue("user"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Advisor.Report(r.Context(), r.PathValue("user"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName()))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	userType, err := session.ParseUserType(req.UserType)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	sess, err := s.deps.Sessions.Start(r.Context(), r.PathValue("user"), req.GameID, userType)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = n
	}
	list, err := s.deps.Sessions.List(r.Context(), r.PathValue("user"), limit)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.deps.Sessions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var a session.Answer
	if err := decodeJSON(w, r, &a); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.deps.Sessions.RecordAnswer(r.Context(), r.PathValue("id"), a); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.deps.Sessions.End(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, endSessionResponse{Session: sess, Summary: session.Summarize(sess)})
}

func (s *Server) handleCareers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Advisor.Catalog())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, games.ErrInvalidRound),
		errors.Is(err, session.ErrInvalid),
		errors.Is(err, advisor.ErrUserRequired):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrCompleted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.deps.Logger.Error("request failed", zap.Error(err))
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
