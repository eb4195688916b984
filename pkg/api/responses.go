package api

import "time"

// OptimizeResponse is the outcome of a single resolution.
//
// RequestedTarget is always the identifier the caller asked for, even when
// the upstream call was made against a substitute; EffectiveTarget names the
// model the optimizer actually saw.
type OptimizeResponse struct {
	RequestedTarget string    `json:"requested_target"`
	EffectiveTarget string    `json:"effective_target"`
	Method          string    `json:"method"`
	Reason          string    `json:"reason,omitempty"`
	Original        string    `json:"original"`
	Optimized       string    `json:"optimized"`
	Analysis        string    `json:"analysis,omitempty"`
	OriginalLength  int       `json:"original_length"`
	OptimizedLength int       `json:"optimized_length"`
	Timestamp       time.Time `json:"timestamp"`
}

// OptimizationMetadata mirrors the _optimization_metadata block of the
// per-target output documents.
type OptimizationMetadata struct {
	OriginalLength  int       `json:"original_length"`
	OptimizedLength int       `json:"optimized_length"`
	TargetModel     string    `json:"target_model"`
	Method          string    `json:"method"`
	Timestamp       time.Time `json:"timestamp"`
}

// OptimizedScenario is a scenario whose prompt has been replaced by its
// optimized form. All other fields are verbatim copies of the input.
type OptimizedScenario struct {
	Name              string               `json:"name"`
	Prompt            string               `json:"prompt"`
	KeyIssues         []string             `json:"key_issues"`
	RequiredSolutions []string             `json:"required_solutions"`
	Policies          []string             `json:"policies"`
	Metadata          OptimizationMetadata `json:"_optimization_metadata"`
}

// BatchOptimizeResponse is the outcome of a batch resolution.
type BatchOptimizeResponse struct {
	RunID     string                       `json:"run_id"`
	Target    string                       `json:"target"`
	Scenarios map[string]OptimizedScenario `json:"scenarios"`
	Failures  map[string]string            `json:"failures,omitempty"`
}

// TargetInfo describes one entry of the configured target tables.
type TargetInfo struct {
	ID         string `json:"id"`
	Supported  bool   `json:"supported"`
	Substitute string `json:"substitute,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
