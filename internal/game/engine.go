// internal/game/engine.go
//
// Playable game engine. The solver drives it as an opaque collaborator
// through Start / IsFinished / MakeGuess; the HTTP layer uses ApplyGuess.
// Responsibilities:
//   - Choose the answer (given, or drawn from the secret pool).
//   - Validate and apply guesses (length, alphabetic, allowed list).
//   - Score guesses with the two-pass oracle.
//   - Track state transitions: playing → won/lost.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"os"
)

// New constructs an idle game. Call Start before guessing.
func New(opts Options) *Game {
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultRows
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Game{
		Rows:    rows,
		Cols:    WordLen,
		secrets: opts.Secrets,
		allowed: opts.Allowed,
		rng:     opts.Rand,
		out:     out,
	}
}

// Start begins a new round. If secret is empty one is drawn uniformly from
// the secret pool. With display on, every applied guess is printed.
func (g *Game) Start(secret string, display bool) error {
	secret = Normalize(secret)
	if secret == "" {
		if len(g.secrets) == 0 {
			return ErrNoSecrets
		}
		secret = g.secrets[g.intN(len(g.secrets))]
	}
	if err := ValidateWord(secret); err != nil {
		return err
	}

	g.ID = randomID()
	g.Answer = secret
	g.Guesses = g.Guesses[:0]
	g.Patterns = g.Patterns[:0]
	g.Finished, g.Won = false, false
	g.display = display
	return nil
}

// IsFinished reports whether the round is over (solved or out of rows).
func (g *Game) IsFinished() bool { return g.Finished }

// MakeGuess applies a guess and returns its feedback and the number of
// guesses made so far.
func (g *Game) MakeGuess(word string) (Pattern, int, error) {
	p, _, err := g.ApplyGuess(word)
	if err != nil {
		return Pattern{}, len(g.Guesses), err
	}
	return p, len(g.Guesses), nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns: the feedback, the new state string ("playing"/"won"/"lost"), or an error.
//
// Validation rules:
//   - Game must be started and not finished.
//   - Guess must be exactly g.Cols letters and alphabetic a–z.
//   - Guess must be present in the allowed list, when one is configured.
//
// State transitions:
//   - If all tiles are Hit → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (Pattern, string, error) {
	if g.Answer == "" {
		return Pattern{}, g.State(), ErrNotStarted
	}
	if g.Finished {
		return Pattern{}, g.State(), ErrGameFinished
	}
	guess = Normalize(guess)
	if err := ValidateWord(guess); err != nil {
		return Pattern{}, g.State(), err
	}
	if g.allowed != nil {
		if _, ok := g.allowed[guess]; !ok {
			return Pattern{}, g.State(), fmt.Errorf("%q: %w", guess, ErrNotAllowed)
		}
	}

	p := evaluate(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)
	g.Patterns = append(g.Patterns, p)

	if p.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	if g.display {
		fmt.Fprintf(g.out, "%d/%d  %s  %s\n", len(g.Guesses), g.Rows, guess, p.Tiles())
		if g.Finished && !g.Won {
			fmt.Fprintf(g.out, "answer was %s\n", g.Answer)
		}
	}
	return p, g.State(), nil
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Finished {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

// Print writes the board so far to w.
func (g *Game) Print(w io.Writer) {
	for i, guess := range g.Guesses {
		fmt.Fprintf(w, "%s  %s\n", guess, g.Patterns[i].Tiles())
	}
}

func (g *Game) intN(n int) int {
	if g.rng != nil {
		return g.rng.IntN(n)
	}
	return mrand.IntN(n)
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
