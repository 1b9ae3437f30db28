// internal/httpserver/routes_game.go
//
// Playable game endpoints, the same game the solver plays from the CLI.
//   - POST /game/new    → start a game; mode "random" (default) or "daily"
//   - POST /game/guess  → score a guess for an existing game
//
// Daily games draw the secret deterministically from date + salt, so every
// client gets the same word on the same UTC day.

package httpserver

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

type gameEntry struct {
	mu   sync.Mutex
	g    *game.Game
	mode string
	date string
}

func (s *Server) mountGameRoutes() {
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" | "daily"
	Answer string `json:"answer"` // optional fixed answer in random mode (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Mode   string `json:"mode"`
	Date   string `json:"date,omitempty"`
	Rows   int    `json:"rows"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	lists := s.opts.Lists
	g := game.New(game.Options{
		Secrets: lists.Secrets,
		Allowed: lists.AllowedSet(),
		Rows:    s.opts.MaxGuesses,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Out:     io.Discard,
	})

	e := &gameEntry{g: g, mode: req.Mode}
	secret := ""
	switch req.Mode {
	case "", "random":
		e.mode = "random"
		secret = req.Answer
	case "daily":
		now := s.opts.Now()
		e.date = daily.DateKey(now)
		secret = daily.Secret(now, s.opts.DailySalt, lists.Secrets)
	default:
		writeError(w, http.StatusBadRequest, "unknown_mode", nil)
		return
	}

	if err := g.Start(secret, false); err != nil {
		status, code := errorStatus(err)
		writeError(w, status, code, err)
		return
	}
	if err := s.games.Save(r.Context(), g.ID, e); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Mode: e.mode, Date: e.date, Rows: g.Rows})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks   game.Pattern `json:"marks"`
	Pattern string       `json:"pattern"` // digits, position 0 first
	State   string       `json:"state"`   // "playing" | "won" | "lost"
	Guesses int          `json:"guesses"`
	Answer  string       `json:"answer,omitempty"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", nil)
		return
	}
	e, err := s.games.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p, state, err := e.g.ApplyGuess(req.Guess)
	if err != nil {
		status, code := errorStatus(err)
		writeError(w, status, code, err)
		return
	}
	// refresh the idle timer
	_ = s.games.Save(r.Context(), e.g.ID, e)

	res := guessRes{Marks: p, Pattern: p.String(), State: state, Guesses: len(e.g.Guesses)}
	if e.g.IsFinished() {
		s.metrics.GamesPlayed.WithLabelValues(state).Inc()
		if !e.g.Won {
			res.Answer = e.g.Answer
		}
		log.Info().Str("gameId", e.g.ID).Str("mode", e.mode).Str("state", state).Int("guesses", res.Guesses).Msg("game finished")
	}
	writeJSON(w, http.StatusOK, res)
}
