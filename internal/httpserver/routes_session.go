// internal/httpserver/routes_session.go
//
// Solver session endpoints.
//   - POST /session           → create a session, returns its bearer token
//   - POST /session/feedback  → apply {guess, feedback} to the token's session
//   - GET  /session/{id}      → current state of the token's session
//
// A session is not safe for concurrent use, so every access holds the
// entry's mutex.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

const (
	alternatives = 3  // ranked guesses returned alongside the suggestion
	sampleSize   = 20 // candidates listed in a response
)

type sessionEntry struct {
	mu      sync.Mutex
	id      string
	sess    *solver.Session
	created time.Time
}

func (s *Server) mountSessionRoutes() {
	s.r.Post("/session", s.handleNewSession)
	s.r.With(s.requireSession()).Post("/session/feedback", s.handleFeedback)
	s.r.With(s.requireSession()).Get("/session/{id}", s.handleGetSession)
}

type newSessionReq struct {
	Strategy string `json:"strategy"` // "entropy" (default) | "random"
}

type sessionRes struct {
	SessionID    string          `json:"sessionId"`
	Token        string          `json:"token,omitempty"`
	ExpiresAt    *time.Time      `json:"expiresAt,omitempty"`
	Strategy     string          `json:"strategy"`
	State        string          `json:"state"`
	Solved       bool            `json:"solved"`
	Remaining    int             `json:"remaining"`
	Candidates   []string        `json:"candidates"`
	Suggestion   string          `json:"suggestion,omitempty"`
	Alternatives []solver.Scored `json:"alternatives,omitempty"`
	History      []solver.Turn   `json:"history"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	// empty body means defaults
	_ = json.NewDecoder(r.Body).Decode(&req)

	var strat solver.Strategy = s.entropyStrategy()
	if req.Strategy != "" && req.Strategy != "entropy" {
		st, ok := solver.StrategyByName(req.Strategy)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown_strategy", nil)
			return
		}
		strat = st
	}

	t := s.table()
	e := &sessionEntry{
		id:      uuid.NewString(),
		sess:    solver.NewSession(t, strat, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))),
		created: s.opts.Now(),
	}
	e.sess.Start()

	tok, exp, err := s.signSession(e.id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		writeError(w, http.StatusInternalServerError, "sign_failed", nil)
		return
	}
	if err := s.sessions.Save(r.Context(), e.id, e); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	s.metrics.SessionsStarted.Inc()
	log.Info().Str("session", e.id).Str("strategy", strat.Name()).Msg("session started")

	e.mu.Lock()
	res := s.describe(e)
	e.mu.Unlock()
	res.Token = tok
	res.ExpiresAt = &exp
	writeJSON(w, http.StatusCreated, res)
}

type feedbackReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"` // "01020", "0 1 0 2 0", "bybgb", ...
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	e := sessionFrom(r.Context())

	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	guess := game.Normalize(req.Guess)
	if err := game.ValidateWord(guess); err != nil {
		s.metrics.Feedback.WithLabelValues("invalid_word").Inc()
		writeError(w, http.StatusBadRequest, "invalid_word", err)
		return
	}
	p, err := game.ParsePattern(req.Feedback)
	if err != nil {
		s.metrics.Feedback.WithLabelValues("malformed").Inc()
		writeError(w, http.StatusBadRequest, "malformed_feedback", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sess.Observe(guess, p); err != nil {
		status, code := errorStatus(err)
		s.metrics.Feedback.WithLabelValues(code).Inc()
		var nc *solver.NoCandidatesError
		if errors.As(err, &nc) {
			s.metrics.SessionsFinished.WithLabelValues("failed").Inc()
		}
		log.Info().Err(err).Str("session", e.id).Str("guess", guess).Msg("feedback rejected")
		writeError(w, status, code, err)
		return
	}
	s.metrics.Feedback.WithLabelValues("ok").Inc()
	s.metrics.Remaining.Observe(float64(e.sess.Table().NumSecrets()))
	if e.sess.Solved() {
		s.metrics.SessionsFinished.WithLabelValues("solved").Inc()
	}
	writeJSON(w, http.StatusOK, s.describe(e))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e := sessionFrom(r.Context())
	if chi.URLParam(r, "id") != e.id {
		writeError(w, http.StatusUnauthorized, "token_mismatch", nil)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	writeJSON(w, http.StatusOK, s.describe(e))
}

// describe renders e; the caller holds e.mu.
func (s *Server) describe(e *sessionEntry) sessionRes {
	ss := e.sess
	cands := ss.Candidates()
	res := sessionRes{
		SessionID: e.id,
		Strategy:  ss.Strategy().Name(),
		State:     ss.State().String(),
		Solved:    ss.Solved(),
		Remaining: len(cands),
		History:   append([]solver.Turn{}, ss.History()...),
	}
	if ss.Solved() {
		h := ss.History()
		cands = []string{h[len(h)-1].Guess}
		res.Remaining = 1
	}
	if len(cands) > sampleSize {
		cands = cands[:sampleSize]
	}
	res.Candidates = append([]string{}, cands...)

	if ss.State() != solver.InProgress {
		return res
	}
	sug, err := ss.Suggest()
	if err != nil {
		return res
	}
	res.Suggestion = sug
	if ss.Table().NumSecrets() > 1 {
		if ss.Guesses() == 0 && ss.Table() == s.table() {
			res.Alternatives = s.openingRank()
		} else {
			res.Alternatives = solver.Rank(ss.Table(), alternatives)
		}
	}
	return res
}
