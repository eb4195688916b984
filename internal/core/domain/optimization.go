package domain

import "time"

// UpstreamResult is the raw payload of one external optimization call.
type UpstreamResult struct {
	Optimized string
	Analysis  string
}

// Result is the immutable record of one resolution. It is created once per
// successful upstream call and only ever copied afterwards; redirected
// requests get a relabeled clone, never a mutation of the cached value.
type Result struct {
	RequestedTarget string    `json:"requested_target"`
	EffectiveTarget string    `json:"effective_target"`
	Original        string    `json:"original"`
	Optimized       string    `json:"optimized"`
	Analysis        string    `json:"analysis"`
	OriginalLength  int       `json:"original_length"`
	OptimizedLength int       `json:"optimized_length"`
	Method          Method    `json:"method"`
	CreatedAt       time.Time `json:"timestamp"`
}

// NewResult builds the direct-call record for an upstream response.
func NewResult(prompt, target string, upstream UpstreamResult) Result {
	return Result{
		RequestedTarget: target,
		EffectiveTarget: target,
		Original:        prompt,
		Optimized:       upstream.Optimized,
		Analysis:        upstream.Analysis,
		OriginalLength:  len(prompt),
		OptimizedLength: len(upstream.Optimized),
		Method:          DirectMethod(),
		CreatedAt:       time.Now().UTC(),
	}
}

// RelabelFor clones the result for a redirected request: the reported target
// becomes the one the caller asked for while EffectiveTarget keeps naming
// the model the upstream call was made against.
func (r Result) RelabelFor(requested string) Result {
	clone := r
	clone.RequestedTarget = requested
	clone.Method = RedirectedMethod(r.EffectiveTarget)
	return clone
}

// Scenario is a named prompt bundled with descriptive metadata. The metadata
// fields are opaque to the resolver and pass through optimization verbatim.
type Scenario struct {
	Key               string   `json:"key" yaml:"key"`
	Name              string   `json:"name" yaml:"name"`
	Prompt            string   `json:"prompt" yaml:"prompt"`
	KeyIssues         []string `json:"key_issues" yaml:"key_issues"`
	RequiredSolutions []string `json:"required_solutions" yaml:"required_solutions"`
	Policies          []string `json:"policies" yaml:"policies"`
}

// Metadata is the _optimization_metadata block attached to every optimized
// scenario in the per-target output documents.
type Metadata struct {
	OriginalLength  int       `json:"original_length"`
	OptimizedLength int       `json:"optimized_length"`
	TargetModel     string    `json:"target_model"`
	Method          Method    `json:"method"`
	Timestamp       time.Time `json:"timestamp"`
}

// OptimizedScenario is a scenario with its prompt replaced by the optimized
// text. All other fields are byte-for-byte copies of the input scenario.
type OptimizedScenario struct {
	Name              string   `json:"name"`
	Prompt            string   `json:"prompt"`
	KeyIssues         []string `json:"key_issues"`
	RequiredSolutions []string `json:"required_solutions"`
	Policies          []string `json:"policies"`
	Metadata          Metadata `json:"_optimization_metadata"`
}

// Optimize applies a resolution result to the scenario.
func (s Scenario) Optimize(res Result) OptimizedScenario {
	return OptimizedScenario{
		Name:              s.Name,
		Prompt:            res.Optimized,
		KeyIssues:         s.KeyIssues,
		RequiredSolutions: s.RequiredSolutions,
		Policies:          s.Policies,
		Metadata: Metadata{
			OriginalLength:  res.OriginalLength,
			OptimizedLength: res.OptimizedLength,
			TargetModel:     res.RequestedTarget,
			Method:          res.Method,
			Timestamp:       res.CreatedAt,
		},
	}
}
