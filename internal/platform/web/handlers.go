package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/matryer/way"

	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

const (
	defaultSolvesLimit = 20
	maxSolvesLimit     = 200
	maxProfileLen      = 64
)

var errNoStore = errors.New("progress storage is not available")

// writeJSON writes v with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot write response", "err", err)
	}
}

// writeError writes an ErrorResponse.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// validProfile reports whether name can be used as a profile.
func validProfile(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= maxProfileLen
}

// profileParam reads and checks the :profile path parameter.
func (s *Server) profileParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	profile := way.Param(r.Context(), "profile")
	if !validProfile(profile) {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid profile"))
		return "", false
	}
	if s.opts.Store == nil {
		s.writeError(w, http.StatusServiceUnavailable, errNoStore)
		return "", false
	}
	return profile, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
		"storage":  s.opts.Store != nil,
	})
}

// handleLevel serves GET /api/levels/:index[?seed=N].
func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(way.Param(r.Context(), "index"))
	if err != nil || index < 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("level index must be a non-negative integer"))
		return
	}

	seed := s.opts.Seed
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("seed must be an integer"))
			return
		}
	}

	desc := s.generate(seed, index)
	s.writeJSON(w, http.StatusOK, desc)
}

// handleProgress serves GET /api/progress/:profile.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profileParam(w, r)
	if !ok {
		return
	}

	level, err := s.opts.Store.LoadLevel(profile)
	if err != nil && !errors.Is(err, storage.ErrNoProgress) {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ProgressResponse{Profile: profile, Level: level, Display: levelDisplay(level)})
}

// handleResetProgress serves DELETE /api/progress/:profile.
func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profileParam(w, r)
	if !ok {
		return
	}

	if err := s.opts.Store.ResetProgress(profile); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("progress reset", "profile", profile)
	s.writeJSON(w, http.StatusOK, ProgressResponse{Profile: profile, Level: 0, Display: levelDisplay(0)})
}

// handleSolves serves GET /api/solves/:profile[?limit=N].
func (s *Server) handleSolves(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profileParam(w, r)
	if !ok {
		return
	}

	limit := defaultSolvesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, maxSolvesLimit)
	}

	solves, err := s.opts.Store.RecentSolves(profile, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := SolvesResponse{Profile: profile, Solves: make([]SolveView, len(solves))}
	for i, solve := range solves {
		resp.Solves[i] = solveView(solve)
	}
	s.writeJSON(w, http.StatusOK, resp)
}
