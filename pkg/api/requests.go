package api

// OptimizeRequest asks for a single prompt to be optimized for a target model.
type OptimizeRequest struct {
	// the prompt text to optimize, must be non-empty
	Prompt string `json:"prompt" binding:"required,min=1"`

	// the target model identifier, must be present in the supported set
	// or the redirect table
	Target string `json:"target" binding:"required"`
}

// BatchOptimizeRequest optimizes a collection of scenarios for one target.
// When Scenarios is empty the server falls back to its configured collection.
type BatchOptimizeRequest struct {
	Target    string     `json:"target" binding:"required"`
	Scenarios []Scenario `json:"scenarios,omitempty" binding:"omitempty,dive"`
}

// Scenario is a named prompt plus descriptive metadata. Everything except
// the prompt passes through optimization untouched.
type Scenario struct {
	Key               string   `json:"key" binding:"required"`
	Name              string   `json:"name"`
	Prompt            string   `json:"prompt" binding:"required,min=1"`
	KeyIssues         []string `json:"key_issues,omitempty"`
	RequiredSolutions []string `json:"required_solutions,omitempty"`
	Policies          []string `json:"policies,omitempty"`
}
