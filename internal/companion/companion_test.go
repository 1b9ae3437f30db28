package companion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

func testTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Build(context.Background(),
		[]string{"crane", "slate", "excel", "mummy", "trace", "boxed", "qqqqq"},
		[]string{"boxed", "mommy", "crane", "slate", "trace"}, 1)
	require.NoError(t, err)
	return tbl
}

func run(t *testing.T, input string) (Result, string, error) {
	t.Helper()
	var out strings.Builder
	res, err := Run(context.Background(), strings.NewReader(input), &out, testTable(t), Options{})
	return res, out.String(), err
}

func TestRunSolvesWithFeedback(t *testing.T) {
	// opener is crane; crane against boxed is 00001
	res, out, err := run(t, "0 0 0 0 1\ny\n")
	require.NoError(t, err)
	assert.Equal(t, Result{Solved: true, Guesses: 2, Answer: "boxed"}, res)
	assert.Contains(t, out, "Guess 1: CRANE")
	assert.Contains(t, out, "Guess 2: BOXED  (1 candidate left)")
	assert.Contains(t, out, "Solved in 2!")
}

func TestRunAllHitFeedbackCountsAsSolved(t *testing.T) {
	res, _, err := run(t, "22222\n")
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, 1, res.Guesses)
}

func TestRunRepromptsOnMalformedFeedback(t *testing.T) {
	res, out, err := run(t, "hello\nnot a pattern\n\np\n00001\nyes\n")
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, 2, res.Guesses)
	assert.Equal(t, 2, strings.Count(out, "Could not read that"))
	assert.Contains(t, out, "boxed mommy crane slate trace")
}

func TestRunAcceptsPlayedWordOverride(t *testing.T) {
	// excel against boxed is 01020, leaving only boxed
	res, out, err := run(t, "excel 0 1 0 2 0\ny\n")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Guesses)
	assert.Contains(t, out, "Guess 2: BOXED")
}

func TestRunAbortsOnInconsistentFeedback(t *testing.T) {
	_, out, err := run(t, "2 2 2 2 0\n")
	var nc *solver.NoCandidatesError
	require.True(t, errors.As(err, &nc), "got %v", err)
	assert.Contains(t, out, "Cannot continue")
}

func TestRunAbortsOnUnknownGuess(t *testing.T) {
	_, _, err := run(t, "zesty 00000\n")
	var ug *solver.UnknownGuessError
	assert.True(t, errors.As(err, &ug), "got %v", err)
}

func TestRunGivesUpAfterSixRounds(t *testing.T) {
	res, out, err := run(t, strings.Repeat("qqqqq 00000\n", 6))
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Equal(t, 6, res.Guesses)
	assert.Contains(t, out, "Better luck next time!")
}

func TestRunInputClosed(t *testing.T) {
	_, _, err := run(t, "")
	assert.ErrorIs(t, err, ErrInputClosed)
}
