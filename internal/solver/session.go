package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Game is the external game the solver plays against. game.Game implements it.
type Game interface {
	Start(secret string, display bool) error
	IsFinished() bool
	MakeGuess(word string) (game.Pattern, int, error)
}

// State of a Session.
type State int

const (
	NotStarted State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrNotInProgress is returned when a session is used outside InProgress.
var ErrNotInProgress = errors.New("session is not in progress")

// Turn is one observed guess.
type Turn struct {
	Guess     string       `json:"guess"`
	Feedback  game.Pattern `json:"feedback"`
	Remaining int          `json:"remaining"`
}

// Session is the mutable state of one solving run: the candidates still
// possible, the outcome table narrowed to them and the guesses made.
// A Session is not safe for concurrent use.
type Session struct {
	base     *table.Table
	table    *table.Table
	strategy Strategy
	rng      *rand.Rand
	state    State
	history  []Turn
}

// NewSession prepares a session over base. rng feeds randomised
// strategies; nil seeds one from the runtime source.
func NewSession(base *table.Table, s Strategy, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s == nil {
		s = NewEntropy()
	}
	return &Session{base: base, table: base, strategy: s, rng: rng}
}

// Start resets the session to the full candidate set.
func (s *Session) Start() {
	s.table = s.base
	s.history = s.history[:0]
	s.state = InProgress
}

func (s *Session) State() State { return s.state }
func (s *Session) Table() *table.Table { return s.table }
func (s *Session) Candidates() []string { return s.table.Secrets() }
func (s *Session) Guesses() int { return len(s.history) }
func (s *Session) History() []Turn { return s.history }
func (s *Session) Strategy() Strategy { return s.strategy }

// Solved reports whether the last observed feedback was all hits.
func (s *Session) Solved() bool {
	return len(s.history) > 0 && s.history[len(s.history)-1].Feedback.Solved()
}

// Suggest returns the next guess: the last candidate when only one is
// left, otherwise the strategy's choice.
func (s *Session) Suggest() (string, error) {
	if s.state != InProgress {
		return "", ErrNotInProgress
	}
	if s.table.NumSecrets() == 1 {
		return s.table.Secrets()[0], nil
	}
	return s.strategy.Choose(s.table, len(s.history), s.rng), nil
}

// Observe records the feedback for guess and narrows the candidates.
// All-hit feedback finishes the session. A *NoCandidatesError also
// finishes it: the session cannot recover from inconsistent feedback.
func (s *Session) Observe(guess string, fb game.Feedback) error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	guess = game.Normalize(guess)
	p := fb.Code().Pattern()
	if p.Solved() {
		s.history = append(s.history, Turn{Guess: guess, Feedback: p, Remaining: 1})
		s.state = Finished
		return nil
	}

	_, next, err := Filter(s.table, guess, p)
	if err != nil {
		var nc *NoCandidatesError
		if errors.As(err, &nc) {
			s.state = Finished
		}
		return err
	}
	s.table = next
	s.history = append(s.history, Turn{Guess: guess, Feedback: p, Remaining: next.NumSecrets()})
	log.Debug().
		Str("guess", guess).
		Str("feedback", p.String()).
		Int("remaining", next.NumSecrets()).
		Msg("filtered candidates")
	return nil
}

// Finish ends the session without further feedback.
func (s *Session) Finish() { s.state = Finished }

// Play runs one full game against g with the session's strategy and returns
// the number of guesses the game reports when it finishes. An empty secret
// lets the game choose one.
func Play(g Game, s *Session, secret string, display bool) (int, error) {
	if err := g.Start(secret, display); err != nil {
		return 0, err
	}
	s.Start()
	defer s.Finish()

	guesses := 0
	for !g.IsFinished() {
		guess, err := s.Suggest()
		if err != nil {
			return guesses, err
		}
		p, n, err := g.MakeGuess(guess)
		if err != nil {
			return guesses, fmt.Errorf("guess %q: %w", guess, err)
		}
		guesses = n
		if g.IsFinished() {
			remaining := s.table.NumSecrets()
			if p.Solved() {
				remaining = 1
			}
			s.history = append(s.history, Turn{Guess: guess, Feedback: p, Remaining: remaining})
			break
		}
		if err := s.Observe(guess, p); err != nil {
			return guesses, err
		}
	}
	return guesses, nil
}
