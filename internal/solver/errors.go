package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// UnknownGuessError means the guess has no row in the outcome table, i.e.
// the table and the caller use different word lists.
type UnknownGuessError struct {
	Guess string
}

func (e *UnknownGuessError) Error() string {
	return fmt.Sprintf("guess %q is not in the outcome table", e.Guess)
}

// NoCandidatesError means no secret is consistent with the observed
// feedback. The session cannot continue.
type NoCandidatesError struct {
	Guess    string
	Feedback game.Pattern
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("no candidates left after %s → %s; feedback is inconsistent with the word lists",
		e.Guess, e.Feedback)
}
