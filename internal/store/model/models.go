package model

import "time"

// Run summarizes one batch optimization run for a single target.
type Run struct {
	ID            string    `db:"id" json:"id"`
	Target        string    `db:"target" json:"target"`
	Optimizer     string    `db:"optimizer" json:"optimizer"`
	ScenarioCount int       `db:"scenario_count" json:"scenario_count"`
	DirectCount   int       `db:"direct_count" json:"direct_count"`
	ReusedCount   int       `db:"reused_count" json:"reused_count"`
	FailureCount  int       `db:"failure_count" json:"failure_count"`
	StartedAt     time.Time `db:"started_at" json:"started_at"`
	FinishedAt    time.Time `db:"finished_at" json:"finished_at"`
}

// RunResult captures one (scenario, target) resolution inside a run.
// Reason carries the redirect rule's free text for redirected results and is
// observability-only.
type RunResult struct {
	ID              string    `db:"id" json:"id"`
	RunID           string    `db:"run_id" json:"run_id"`
	ScenarioKey     string    `db:"scenario_key" json:"scenario_key"`
	RequestedTarget string    `db:"requested_target" json:"requested_target"`
	EffectiveTarget string    `db:"effective_target" json:"effective_target"`
	Method          string    `db:"method" json:"method"`
	Reason          string    `db:"reason" json:"reason,omitempty"`
	OriginalLength  int       `db:"original_length" json:"original_length"`
	OptimizedLength int       `db:"optimized_length" json:"optimized_length"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
