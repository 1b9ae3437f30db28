// Package table holds the precomputed outcome table: for every allowed guess
// (row) and every possible secret (column) the packed feedback code.
//
// The table owns both word lists so the row and column axes can never drift
// from them; narrowing the columns always narrows the secret list with them.
package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

var (
	// ErrTableMismatch is returned when a table was built from other word lists.
	ErrTableMismatch = errors.New("table: word lists do not match")
	// ErrUnknownWord is returned by Row for a guess outside the guess list.
	ErrUnknownWord = errors.New("table: unknown guess")
)

// Table is an immutable guesses × secrets grid of feedback codes.
type Table struct {
	guesses []string
	secrets []string
	cells   []game.Code // row-major, len(guesses)*len(secrets)
	index   map[string]int
}

func newTable(guesses, secrets []string, cells []game.Code) *Table {
	idx := make(map[string]int, len(guesses))
	for i, g := range guesses {
		if _, dup := idx[g]; !dup {
			idx[g] = i
		}
	}
	return &Table{guesses: guesses, secrets: secrets, cells: cells, index: idx}
}

// Guesses returns the row words. The slice must not be modified.
func (t *Table) Guesses() []string { return t.guesses }

// Secrets returns the column words, i.e. the current candidates.
// The slice must not be modified.
func (t *Table) Secrets() []string { return t.secrets }

// NumGuesses is the number of rows.
func (t *Table) NumGuesses() int { return len(t.guesses) }

// NumSecrets is the number of columns.
func (t *Table) NumSecrets() int { return len(t.secrets) }

// At returns the code for guess row i and secret column j.
func (t *Table) At(i, j int) game.Code { return t.cells[i*len(t.secrets)+j] }

// RowAt returns row i without copying. The slice must not be modified.
func (t *Table) RowAt(i int) []game.Code {
	n := len(t.secrets)
	return t.cells[i*n : (i+1)*n : (i+1)*n]
}

// GuessIndex returns the row of guess, or -1.
func (t *Table) GuessIndex(guess string) int {
	if i, ok := t.index[guess]; ok {
		return i
	}
	return -1
}

// Row returns the codes of guess against every current secret.
func (t *Table) Row(guess string) ([]game.Code, error) {
	i := t.GuessIndex(guess)
	if i < 0 {
		return nil, fmt.Errorf("%q: %w", guess, ErrUnknownWord)
	}
	return t.RowAt(i), nil
}

// Columns returns a new table keeping only the secret columns where keep is
// true, in their original order. Rows are unchanged. t is not modified.
func (t *Table) Columns(keep []bool) *Table {
	if len(keep) != len(t.secrets) {
		panic(fmt.Sprintf("table: mask length %d, want %d", len(keep), len(t.secrets)))
	}
	var cols []int
	secrets := make([]string, 0, len(t.secrets))
	for j, k := range keep {
		if k {
			cols = append(cols, j)
			secrets = append(secrets, t.secrets[j])
		}
	}

	n := len(t.secrets)
	cells := make([]game.Code, 0, len(t.guesses)*len(cols))
	for i := range t.guesses {
		row := t.cells[i*n : (i+1)*n]
		for _, j := range cols {
			cells = append(cells, row[j])
		}
	}
	// rows are shared; the index map is read-only so it can be shared too
	return &Table{guesses: t.guesses, secrets: secrets, cells: cells, index: t.index}
}

// Matches reports whether t was built from exactly these lists, same order.
func (t *Table) Matches(guesses, secrets []string) bool {
	return slices.Equal(t.guesses, guesses) && slices.Equal(t.secrets, secrets)
}

// Check is Matches returning ErrTableMismatch.
func (t *Table) Check(guesses, secrets []string) error {
	if !t.Matches(guesses, secrets) {
		return fmt.Errorf("%w: table has %d×%d, lists have %d×%d",
			ErrTableMismatch, len(t.guesses), len(t.secrets), len(guesses), len(secrets))
	}
	return nil
}
