package solver

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	testGuesses = []string{"crane", "slate", "excel", "mummy", "trace", "boxed", "qqqqq"}
	testSecrets = []string{"boxed", "mommy", "crane", "slate", "trace"}
)

func build(t *testing.T, guesses, secrets []string) *table.Table {
	t.Helper()
	tbl, err := table.Build(context.Background(), guesses, secrets, 2)
	require.NoError(t, err)
	return tbl
}

func defaultTable(t *testing.T) (*table.Table, *words.Lists) {
	t.Helper()
	l, err := words.Default()
	require.NoError(t, err)
	return build(t, l.Allowed, l.Secrets), l
}

func TestEntropyThreeCandidates(t *testing.T) {
	// one candidate on its own, two sharing a pattern
	row := []game.Code{game.AllHit, 60, 60}
	assert.InDelta(t, 0.9183, Entropy(row), 1e-4)
}

func TestEntropyZeroForSingleDistinctPattern(t *testing.T) {
	assert.Equal(t, 0.0, Entropy([]game.Code{17}))
	assert.Equal(t, 0.0, Entropy([]game.Code{4, 4, 4, 4}))
	assert.Equal(t, 0.0, Entropy(nil))
	assert.InDelta(t, 2.0, Entropy([]game.Code{1, 2, 3, 4}), 1e-12)
}

func TestEntropyNonNegativeOverTable(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	for i := range tbl.Guesses() {
		assert.GreaterOrEqual(t, Entropy(tbl.RowAt(i)), 0.0)
	}
}

func TestBestGuessTieBreaksOnRowOrder(t *testing.T) {
	tbl := build(t, []string{"qqqqq", "zzzzz"}, []string{"boxed", "mommy"})
	assert.Equal(t, Scored{Guess: "qqqqq", Bits: 0}, BestGuess(tbl))

	tbl = build(t, []string{"qqqqq", "mommy", "boxed"}, []string{"boxed", "mommy"})
	best := BestGuess(tbl)
	assert.Equal(t, "mommy", best.Guess)
	assert.InDelta(t, 1.0, best.Bits, 1e-12)
}

func TestRank(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	ranked := Rank(tbl, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, BestGuess(tbl), ranked[0])
	assert.True(t, slices.IsSortedFunc(ranked, func(a, b Scored) int {
		switch {
		case a.Bits > b.Bits:
			return -1
		case a.Bits < b.Bits:
			return 1
		}
		return 0
	}))
	assert.Len(t, Rank(tbl, 0), len(testGuesses))
}

func TestFilterKeepsConsistentSecretsInOrder(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)

	got, next, err := Filter(tbl, "excel", game.Pattern{game.MarkPresent, game.MarkMiss, game.MarkPresent, game.MarkMiss, game.MarkMiss})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "trace"}, got)
	assert.Equal(t, got, next.Secrets())
	assert.Equal(t, tbl.NumGuesses(), next.NumGuesses())

	p, _ := game.ParsePattern("01020")
	got, _, err = Filter(tbl, "EXCEL", p.Code())
	require.NoError(t, err)
	assert.Equal(t, []string{"boxed"}, got)

	// input table is never modified
	assert.Equal(t, testSecrets, tbl.Secrets())
}

func TestFilterErrors(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)

	_, _, err := Filter(tbl, "zesty", game.Code(0))
	var ug *UnknownGuessError
	require.True(t, errors.As(err, &ug))
	assert.Equal(t, "zesty", ug.Guess)

	_, _, err = Filter(tbl, "excel", game.AllHit)
	var nc *NoCandidatesError
	require.True(t, errors.As(err, &nc))
	assert.True(t, nc.Feedback.Solved())
}

func TestFilterNoOpWhenAllSecretsAgree(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	got, next, err := Filter(tbl, "qqqqq", game.Code(0))
	require.NoError(t, err)
	assert.Equal(t, testSecrets, got)

	again, _, err := Filter(next, "qqqqq", game.Code(0))
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestFilterNeverGrows(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	for i, g := range tbl.Guesses() {
		for _, c := range tbl.RowAt(i) {
			got, _, err := Filter(tbl, g, c)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), tbl.NumSecrets())
			assert.NotEmpty(t, got)
		}
	}
}

func TestPlaySingleCandidateTakesOneGuess(t *testing.T) {
	tbl := build(t, []string{"crane", "boxed"}, []string{"boxed"})
	for _, strat := range []Strategy{NewEntropy(), Random{}} {
		sess := NewSession(tbl, strat, rand.New(rand.NewPCG(1, 2)))
		n, err := Play(game.New(game.Options{}), sess, "boxed", false)
		require.NoError(t, err, strat.Name())
		assert.Equal(t, 1, n, strat.Name())
		assert.True(t, sess.Solved())
		assert.Equal(t, Finished, sess.State())
	}
}

func TestEntropyOpenerRemembersLatestTableOnly(t *testing.T) {
	e := NewEntropy()
	var tables []*table.Table
	for _, secrets := range [][]string{
		{"crane", "slate"}, {"boxed", "mommy"}, {"trace", "crane"}, {"slate", "boxed"}, {"mommy", "trace"},
	} {
		tbl := build(t, []string{"crane", "slate", "trace", "boxed", "mommy"}, secrets)
		tables = append(tables, tbl)
		assert.Equal(t, BestGuess(tbl).Guess, e.Choose(tbl, 0, nil))
	}
	assert.Same(t, tables[len(tables)-1], e.base)

	// going back recomputes rather than reusing a stale opener
	assert.Equal(t, BestGuess(tables[0]).Guess, e.Choose(tables[0], 0, nil))
	assert.Same(t, tables[0], e.base)
}

func TestPlayEntropySolvesEveryDefaultSecret(t *testing.T) {
	tbl, l := defaultTable(t)
	strat := NewEntropy()
	for _, secret := range l.Secrets {
		g := game.New(game.Options{Allowed: l.AllowedSet()})
		sess := NewSession(tbl, strat, nil)
		n, err := Play(g, sess, secret, false)
		require.NoError(t, err, secret)
		assert.True(t, sess.Solved(), secret)
		assert.LessOrEqual(t, n, game.DefaultRows)
	}
}

func TestSessionKeepsSecretAmongCandidates(t *testing.T) {
	tbl, l := defaultTable(t)
	secret := l.Secrets[len(l.Secrets)/2]

	sess := NewSession(tbl, NewEntropy(), nil)
	_, err := sess.Suggest()
	assert.ErrorIs(t, err, ErrNotInProgress)

	sess.Start()
	assert.Equal(t, InProgress, sess.State())
	for sess.State() == InProgress {
		guess, err := sess.Suggest()
		require.NoError(t, err)
		p, err := game.Evaluate(guess, secret)
		require.NoError(t, err)
		before := len(sess.Candidates())
		require.NoError(t, sess.Observe(guess, p))
		if sess.State() == InProgress {
			assert.Contains(t, sess.Candidates(), secret)
			assert.LessOrEqual(t, len(sess.Candidates()), before)
		}
		require.Less(t, sess.Guesses(), 10)
	}
	assert.True(t, sess.Solved())
	assert.Equal(t, secret, sess.History()[sess.Guesses()-1].Guess)
}

type mockGame struct{ mock.Mock }

func (m *mockGame) Start(secret string, display bool) error {
	return m.Called(secret, display).Error(0)
}

func (m *mockGame) IsFinished() bool { return m.Called().Bool(0) }

func (m *mockGame) MakeGuess(word string) (game.Pattern, int, error) {
	args := m.Called(word)
	return args.Get(0).(game.Pattern), args.Int(1), args.Error(2)
}

func TestPlayStopsOnInconsistentFeedback(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	sess := NewSession(tbl, NewEntropy(), nil)
	opener := BestGuess(tbl).Guess

	g := new(mockGame)
	g.On("Start", "", false).Return(nil)
	g.On("IsFinished").Return(false)
	// four hits and a miss on the opener matches no secret
	g.On("MakeGuess", opener).Return(game.Pattern{game.MarkHit, game.MarkHit, game.MarkHit, game.MarkHit, game.MarkMiss}, 1, nil)

	n, err := Play(g, sess, "", false)
	var nc *NoCandidatesError
	require.True(t, errors.As(err, &nc), "got %v", err)
	assert.Equal(t, 1, n)
	assert.Equal(t, Finished, sess.State())
	g.AssertExpectations(t)
}

func TestPlayPropagatesGameErrors(t *testing.T) {
	tbl := build(t, testGuesses, testSecrets)
	g := game.New(game.Options{Allowed: map[string]struct{}{"boxed": {}}})
	_, err := Play(g, NewSession(tbl, NewEntropy(), nil), "boxed", false)
	assert.ErrorIs(t, err, game.ErrNotAllowed)
}

func TestCompareIsDeterministic(t *testing.T) {
	tbl, l := defaultTable(t)
	newGame := func() Game { return game.New(game.Options{Allowed: l.AllowedSet()}) }
	opts := CompareOptions{Games: 12, Seed: 42, Workers: 4}

	a, err := Compare(context.Background(), tbl, newGame, []Strategy{NewEntropy(), Random{}}, opts)
	require.NoError(t, err)
	b, err := Compare(context.Background(), tbl, newGame, []Strategy{NewEntropy(), Random{}}, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	require.Len(t, a, 2)
	assert.Equal(t, "entropy", a[0].Strategy)
	assert.Equal(t, "random", a[1].Strategy)
	for _, s := range a {
		total := 0
		for _, n := range s.Histogram {
			total += n
		}
		assert.Equal(t, opts.Games, total)
		assert.Equal(t, opts.Games, s.Games)
		assert.GreaterOrEqual(t, s.Mean, 1.0)
	}
	assert.Equal(t, a[0].Games, a[0].Solved)
	// both strategies saw the same secrets
	for i := range a[0].Results {
		assert.Equal(t, a[0].Results[i].Secret, a[1].Results[i].Secret)
	}
}

func TestStrategyByName(t *testing.T) {
	s, ok := StrategyByName("random")
	require.True(t, ok)
	assert.Equal(t, "random", s.Name())
	_, ok = StrategyByName("minimax")
	assert.False(t, ok)
}
