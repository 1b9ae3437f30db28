// internal/game/types.go
//
// Core type definitions for the Wordle game engine and the feedback oracle.
// Defines:
//   - Mark: per-letter result of a guess (hit/present/miss).
//   - Pattern / Code: a full row of marks and its packed base-3 form.
//   - Game: state for a single in-progress or finished game.

package game

import (
	"fmt"
	"io"
	"math/rand/v2"
)

const (
	// WordLen is the number of letters in every word.
	WordLen = 5
	// NumCodes is the number of distinct packed patterns (3^WordLen).
	NumCodes = 243
	// DefaultRows is the guess limit of a standard game.
	DefaultRows = 6
)

// Mark represents the evaluation result for a single letter in a guess.
// The numeric values are the base-3 digits used by Code:
//   - MarkMiss (0):    letter does not occur in the answer (or all copies are used up).
//   - MarkPresent (1): letter occurs in the answer at another position.
//   - MarkHit (2):     letter is correct and in the correct position.
type Mark uint8

const (
	MarkMiss Mark = iota
	MarkPresent
	MarkHit
)

func (m Mark) String() string {
	switch m {
	case MarkMiss:
		return "miss"
	case MarkPresent:
		return "present"
	case MarkHit:
		return "hit"
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// MarshalText encodes marks as "hit" / "present" / "miss" in JSON payloads.
func (m Mark) MarshalText() ([]byte, error) {
	if m > MarkHit {
		return nil, fmt.Errorf("game: invalid mark %d", uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(b []byte) error {
	switch string(b) {
	case "miss":
		*m = MarkMiss
	case "present":
		*m = MarkPresent
	case "hit":
		*m = MarkHit
	default:
		return fmt.Errorf("game: unknown mark %q", b)
	}
	return nil
}

// Pattern is the feedback for a whole guess, one Mark per position.
type Pattern [WordLen]Mark

// Code is a Pattern packed in base 3: digit i is the mark at position i,
// position 0 being the least significant digit.
type Code uint8

// Feedback is anything that can be reduced to a packed Code.
// Both Pattern and Code implement it.
type Feedback interface {
	Code() Code
}

// Game holds the state of a single Wordle game session.
type Game struct {
	ID       string    // Unique game identifier (random hex string).
	Answer   string    // The solution word (always lowercase).
	Rows     int       // Maximum number of guesses allowed (typically 6).
	Cols     int       // Number of letters per word (always WordLen).
	Guesses  []string  // List of guesses made so far (lowercased).
	Patterns []Pattern // Feedback for each guess, same order as Guesses.
	Finished bool      // True once the game is over (won or lost).
	Won      bool      // True if the game was finished with a win.

	secrets []string
	allowed map[string]struct{}
	rng     *rand.Rand
	out     io.Writer
	display bool
}

// Options configures New.
type Options struct {
	// Secrets is the pool random answers are drawn from.
	Secrets []string
	// Allowed restricts guesses; nil accepts any well-formed word.
	Allowed map[string]struct{}
	// Rows overrides DefaultRows when > 0.
	Rows int
	// Rand supplies randomness for answer selection; nil uses the
	// auto-seeded math/rand/v2 source.
	Rand *rand.Rand
	// Out receives the board when a game is started with display on.
	Out io.Writer
}
