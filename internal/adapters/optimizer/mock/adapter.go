package mock

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/ports"
	"github.com/nulzo/prompt-optimizer-api/internal/registry"
)

func init() {
	registry.Register("mock", func(cfg domain.CapabilityConfig) (ports.PromptOptimizer, error) {
		return New(), nil
	})
}

// Adapter is a deterministic local optimizer for development, benchmarks and
// tests. It restructures the prompt the way the real optimizer tends to
// (sections, explicit instructions) without any network call.
type Adapter struct {
	calls atomic.Int64
}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return "mock"
}

// Calls reports how many times Optimize has been invoked. Tests use this to
// assert the at-most-once-per-key contract.
func (a *Adapter) Calls() int64 {
	return a.calls.Load()
}

func (a *Adapter) Optimize(ctx context.Context, prompt, target string) (domain.UpstreamResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.UpstreamResult{}, err
	}
	a.calls.Add(1)

	var b strings.Builder
	b.WriteString("## Task\n\n")
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString("\n\n## Instructions\n\n")
	b.WriteString("- Address every point raised above\n")
	b.WriteString("- Respond in a clear, structured format\n")
	b.WriteString(fmt.Sprintf("- Tailor the response style to %s\n", target))

	return domain.UpstreamResult{
		Optimized: b.String(),
		Analysis:  fmt.Sprintf("Restructured prompt with explicit sections for %s.", target),
	}, nil
}
