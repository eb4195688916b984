package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/store"
	"github.com/nulzo/prompt-optimizer-api/internal/store/model"
)

// BatchOutcome collects the results of one batch resolution run.
type BatchOutcome struct {
	RunID      string
	Target     string
	Scenarios  map[string]domain.OptimizedScenario
	Failures   map[string]string
	StartedAt  time.Time
	FinishedAt time.Time
}

// DirectCount reports how many scenarios were served by a direct call.
func (o *BatchOutcome) DirectCount() int {
	n := 0
	for _, sc := range o.Scenarios {
		if sc.Metadata.Method.Kind == domain.MethodDirect {
			n++
		}
	}
	return n
}

// ReusedCount reports how many scenarios reused a substitute's optimization.
func (o *BatchOutcome) ReusedCount() int {
	return len(o.Scenarios) - o.DirectCount()
}

// BatchOptimizer applies the resolver to every scenario in a collection for
// one target. Failures are isolated per scenario unless fail-fast is set.
type BatchOptimizer struct {
	resolver *Resolver
	repo     store.Repository
	logger   *zap.Logger
	failFast bool
}

// NewBatchOptimizer wires a batch runner. repo may be nil when run history
// is not wanted (tests, one-off CLI runs against a read-only filesystem).
func NewBatchOptimizer(resolver *Resolver, repo store.Repository, failFast bool, logger *zap.Logger) *BatchOptimizer {
	return &BatchOptimizer{
		resolver: resolver,
		repo:     repo,
		logger:   logger,
		failFast: failFast,
	}
}

// OptimizeScenarios resolves every scenario against target. The returned
// outcome always accounts for each input scenario, either under Scenarios or
// under Failures. With fail-fast enabled the first error aborts the batch
// and is returned alongside the partial outcome.
func (b *BatchOptimizer) OptimizeScenarios(ctx context.Context, scenarios []domain.Scenario, target string) (*BatchOutcome, error) {
	out := &BatchOutcome{
		RunID:     uuid.NewString(),
		Target:    target,
		Scenarios: make(map[string]domain.OptimizedScenario, len(scenarios)),
		Failures:  make(map[string]string),
		StartedAt: time.Now().UTC(),
	}

	b.logger.Info("optimizing scenarios",
		zap.String("run_id", out.RunID),
		zap.String("target", target),
		zap.Int("count", len(scenarios)),
	)

	for _, sc := range scenarios {
		res, err := b.resolver.Resolve(ctx, sc.Prompt, target)
		if err != nil {
			b.logger.Error("scenario optimization failed",
				zap.String("run_id", out.RunID),
				zap.String("scenario", sc.Key),
				zap.String("target", target),
				zap.Error(err),
			)
			out.Failures[sc.Key] = err.Error()
			if b.failFast {
				out.FinishedAt = time.Now().UTC()
				return out, fmt.Errorf("batch aborted on scenario %q: %w", sc.Key, err)
			}
			continue
		}
		out.Scenarios[sc.Key] = sc.Optimize(res)
	}

	out.FinishedAt = time.Now().UTC()
	b.record(ctx, out)
	return out, nil
}

// record persists the run history. Persistence failures are logged, never
// surfaced: the batch outcome stands on its own.
func (b *BatchOptimizer) record(ctx context.Context, out *BatchOutcome) {
	if b.repo == nil {
		return
	}

	redirects := b.resolver.Targets().Redirects()

	err := b.repo.WithTx(ctx, func(repo store.Repository) error {
		run := &model.Run{
			ID:            out.RunID,
			Target:        out.Target,
			Optimizer:     b.resolver.OptimizerName(),
			ScenarioCount: len(out.Scenarios) + len(out.Failures),
			DirectCount:   out.DirectCount(),
			ReusedCount:   out.ReusedCount(),
			FailureCount:  len(out.Failures),
			StartedAt:     out.StartedAt,
			FinishedAt:    out.FinishedAt,
		}
		if err := repo.Runs().Create(ctx, run); err != nil {
			return err
		}

		for key, sc := range out.Scenarios {
			effective := out.Target
			reason := ""
			if sc.Metadata.Method.Kind == domain.MethodRedirected {
				effective = sc.Metadata.Method.Substitute
				if rule, ok := redirects[out.Target]; ok {
					reason = rule.Reason
				}
			}

			result := &model.RunResult{
				ID:              uuid.NewString(),
				RunID:           out.RunID,
				ScenarioKey:     key,
				RequestedTarget: out.Target,
				EffectiveTarget: effective,
				Method:          sc.Metadata.Method.Label(),
				Reason:          reason,
				OriginalLength:  sc.Metadata.OriginalLength,
				OptimizedLength: sc.Metadata.OptimizedLength,
				CreatedAt:       sc.Metadata.Timestamp,
			}
			if err := repo.Runs().LogResult(ctx, result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		b.logger.Warn("failed to persist run history",
			zap.String("run_id", out.RunID),
			zap.Error(err),
		)
	}
}
