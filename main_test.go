package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func testLists(t *testing.T) *words.Lists {
	t.Helper()
	l, err := words.New([]string{"zesty"}, []string{"crane", "slate", "trace", "boxed"})
	require.NoError(t, err)
	return l
}

func TestLoadTableBuildsWhenMissing(t *testing.T) {
	cfg = config.Defaults()
	cfg.TablePath = filepath.Join(t.TempDir(), "missing.bin")
	lists := testLists(t)

	tb, err := loadTable(context.Background(), lists)
	require.NoError(t, err)
	assert.Equal(t, lists.Allowed, tb.Guesses())
	assert.Equal(t, lists.Secrets, tb.Secrets())
}

func TestLoadTableChecksArtifact(t *testing.T) {
	cfg = config.Defaults()
	cfg.TablePath = filepath.Join(t.TempDir(), "outcomes.bin")
	lists := testLists(t)

	// secrets-only tables are fine
	tb, err := table.Build(context.Background(), lists.Secrets, lists.Secrets, 1)
	require.NoError(t, err)
	require.NoError(t, table.Save(cfg.TablePath, tb))
	got, err := loadTable(context.Background(), lists)
	require.NoError(t, err)
	assert.Equal(t, lists.Secrets, got.Guesses())

	// a table over other secrets is not
	tb, err = table.Build(context.Background(), lists.Secrets, []string{"crane", "slate"}, 1)
	require.NoError(t, err)
	require.NoError(t, table.Save(cfg.TablePath, tb))
	_, err = loadTable(context.Background(), lists)
	assert.ErrorIs(t, err, table.ErrTableMismatch)
}

func TestCommonGuessesKeepsAllowedWords(t *testing.T) {
	cfg = config.Defaults()
	path := filepath.Join(t.TempDir(), "freq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"crane": 9, "about": 8, "slate": 7, "zesty": 7, "boxed": 1}`), 0o644))
	precomputeFlags.freq = path
	t.Cleanup(func() { precomputeFlags.freq = "" })

	got, err := commonGuesses(testLists(t), 3)
	require.NoError(t, err)
	// "about" is not an allowed guess; equal frequencies sort alphabetically
	assert.Equal(t, []string{"crane", "slate", "zesty"}, got)
}

func TestWordsCommonUsesConfiguredTop(t *testing.T) {
	cfg = config.Defaults()
	cfg.CommonTop = 2
	dir := t.TempDir()
	cfg.FreqFile = filepath.Join(dir, "freq.json")
	require.NoError(t, os.WriteFile(cfg.FreqFile, []byte(`{"crane": 9, "slate": 7, "trace": 5}`), 0o644))
	commonFlags.out = filepath.Join(dir, "common.txt")
	t.Cleanup(func() { commonFlags.out = "" })

	require.NoError(t, runWordsCommon(wordsCommonCmd, nil))
	got, err := words.ReadFile(commonFlags.out)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, got)
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	printSummaries(&buf, []solver.Summary{{
		Strategy: "entropy", Games: 4, Solved: 4, Mean: 2.5, Median: 2.5, Max: 3,
		Histogram: map[int]int{2: 2, 3: 2},
	}})
	out := buf.String()
	assert.Contains(t, out, "STRATEGY")
	assert.Contains(t, out, "entropy")
	assert.Contains(t, out, "  2 | "+repeat('#', 20))
	assert.Contains(t, out, "  1 | ")
}

func repeat(c byte, n int) string { return string(bytes.Repeat([]byte{c}, n)) }
