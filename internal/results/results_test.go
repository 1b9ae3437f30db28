package results

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

func openTest(t *testing.T) *Repository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	// second run is a no-op
	require.NoError(t, Migrate(db))
	return NewRepository(db)
}

func TestSaveAndListRuns(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	sum := solver.Summary{
		Strategy: "entropy", Games: 2, Solved: 2, Mean: 3.5, Median: 3.5, StdDev: 0.5, Max: 4,
		Results: []solver.GameResult{
			{Strategy: "entropy", Secret: "boxed", Guesses: 3, Solved: true},
			{Strategy: "entropy", Secret: "mommy", Guesses: 4, Solved: true},
		},
	}
	first, err := repo.SaveRun(ctx, 42, sum)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	now = now.Add(time.Hour)
	sum.Strategy = "random"
	second, err := repo.SaveRun(ctx, 42, sum)
	require.NoError(t, err)

	runs, err := repo.Runs(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, "entropy", runs[1].Strategy)
	assert.Equal(t, int64(42), runs[1].Seed)
	assert.InDelta(t, 3.5, runs[1].Mean, 1e-9)
	assert.True(t, runs[1].CreatedAt.Equal(first.CreatedAt))

	games, err := repo.RunGames(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, sum.Results[0].Secret, games[0].Secret)
	assert.Equal(t, []solver.GameResult{
		{Strategy: "entropy", Secret: "boxed", Guesses: 3, Solved: true},
		{Strategy: "entropy", Secret: "mommy", Guesses: 4, Solved: true},
	}, games)
}
