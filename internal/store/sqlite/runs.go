package sqlite

import (
	"context"
	"fmt"

	"github.com/nulzo/prompt-optimizer-api/internal/store/model"
)

type runRepo struct {
	db DB
}

func (r *runRepo) Create(ctx context.Context, run *model.Run) error {
	query := `
		INSERT INTO runs (
			id, target, optimizer, scenario_count, direct_count,
			reused_count, failure_count, started_at, finished_at
		) VALUES (
			:id, :target, :optimizer, :scenario_count, :direct_count,
			:reused_count, :failure_count, :started_at, :finished_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, run); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (r *runRepo) LogResult(ctx context.Context, result *model.RunResult) error {
	query := `
		INSERT INTO run_results (
			id, run_id, scenario_key, requested_target, effective_target,
			method, reason, original_length, optimized_length, created_at
		) VALUES (
			:id, :run_id, :scenario_key, :requested_target, :effective_target,
			:method, :reason, :original_length, :optimized_length, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("failed to insert run result: %w", err)
	}
	return nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []model.Run
	query := `SELECT * FROM runs ORDER BY started_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent runs: %w", err)
	}
	return runs, nil
}

func (r *runRepo) ResultsForRun(ctx context.Context, runID string) ([]model.RunResult, error) {
	var results []model.RunResult
	query := `SELECT * FROM run_results WHERE run_id = ? ORDER BY scenario_key`
	if err := r.db.SelectContext(ctx, &results, query, runID); err != nil {
		return nil, fmt.Errorf("failed to list run results: %w", err)
	}
	return results, nil
}
