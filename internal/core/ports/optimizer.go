package ports

import (
	"context"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

// PromptOptimizer is the external optimization capability. Implementations
// make at most one upstream call per invocation and must return
// domain.ErrEmptyOptimizedPrompt (wrapped or bare) when the service
// completes without producing optimized text.
type PromptOptimizer interface {
	// Name identifies the adapter for logging and run records.
	Name() string

	// Optimize rewrites the prompt for the given target model. The target
	// handed in here is always the effective identifier; redirect policy is
	// the resolver's job, not the adapter's.
	Optimize(ctx context.Context, prompt, target string) (domain.UpstreamResult, error)
}
