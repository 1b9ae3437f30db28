package solver

import (
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Filter narrows t to the secrets consistent with having observed feedback
// for guess. It returns the surviving candidates (in their original order)
// and a new table restricted to them; t itself is left untouched.
//
// Errors: *UnknownGuessError when guess has no row in t, *NoCandidatesError
// when nothing survives.
func Filter(t *table.Table, guess string, feedback game.Feedback) ([]string, *table.Table, error) {
	i := t.GuessIndex(game.Normalize(guess))
	if i < 0 {
		return nil, nil, &UnknownGuessError{Guess: guess}
	}
	code := feedback.Code()
	row := t.RowAt(i)

	keep := make([]bool, len(row))
	n := 0
	for j, c := range row {
		if c == code {
			keep[j] = true
			n++
		}
	}
	if n == 0 {
		return nil, nil, &NoCandidatesError{Guess: guess, Feedback: code.Pattern()}
	}
	next := t.Columns(keep)
	return next.Secrets(), next, nil
}
