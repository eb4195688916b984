package store

import (
	"context"

	"github.com/nulzo/prompt-optimizer-api/internal/store/model"
)

// Repository is the main contract for the data layer.
type Repository interface {
	Runs() RunRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

// RunRepository stores the history of batch optimization runs.
type RunRepository interface {
	// Create records a completed run.
	Create(ctx context.Context, run *model.Run) error
	// LogResult stores one per-scenario result of a run.
	LogResult(ctx context.Context, result *model.RunResult) error
	// Recent returns the last N runs, newest first.
	Recent(ctx context.Context, limit int) ([]model.Run, error)
	// ResultsForRun returns all per-scenario results for a run.
	ResultsForRun(ctx context.Context, runID string) ([]model.RunResult, error)
}
