package results

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Run is one stored strategy comparison.
type Run struct {
	ID         string    `db:"id" json:"id"`
	Strategy   string    `db:"strategy" json:"strategy"`
	Seed       int64     `db:"seed" json:"seed"`
	Games      int       `db:"games" json:"games"`
	Solved     int       `db:"solved" json:"solved"`
	Mean       float64   `db:"mean" json:"mean"`
	Median     float64   `db:"median" json:"median"`
	StdDev     float64   `db:"std_dev" json:"stdDev"`
	MaxGuesses int       `db:"max_guesses" json:"maxGuesses"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Repository stores comparison runs and their games.
type Repository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewRepository wraps a migrated database.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// SaveRun stores a summary and all of its games in one transaction.
func (r *Repository) SaveRun(ctx context.Context, seed uint64, s solver.Summary) (Run, error) {
	run := Run{
		ID:         uuid.NewString(),
		Strategy:   s.Strategy,
		Seed:       int64(seed),
		Games:      s.Games,
		Solved:     s.Solved,
		Mean:       s.Mean,
		Median:     s.Median,
		StdDev:     s.StdDev,
		MaxGuesses: s.Max,
		CreatedAt:  r.now().UTC(),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Run{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, `
		INSERT INTO runs (id, strategy, seed, games, solved, mean, median, std_dev, max_guesses, created_at)
		VALUES (:id, :strategy, :seed, :games, :solved, :mean, :median, :std_dev, :max_guesses, :created_at)`,
		run); err != nil {
		return Run{}, err
	}
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO run_games (run_id, idx, secret, guesses, solved) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, err
	}
	defer stmt.Close()
	for i, g := range s.Results {
		if _, err := stmt.ExecContext(ctx, run.ID, i, g.Secret, g.Guesses, g.Solved); err != nil {
			return Run{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Runs returns the most recent runs first. limit <= 0 defaults to 20.
func (r *Repository) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	out := []Run{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, strategy, seed, games, solved, mean, median, std_dev, max_guesses, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	return out, err
}

// RunGames returns the games of one run in play order.
func (r *Repository) RunGames(ctx context.Context, runID string) ([]solver.GameResult, error) {
	out := []solver.GameResult{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT r.strategy, g.secret, g.guesses, g.solved
		FROM run_games g JOIN runs r ON r.id = g.run_id
		WHERE g.run_id = ?
		ORDER BY g.idx`, runID)
	return out, err
}
