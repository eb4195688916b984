package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/ports"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache"
)

// Resolver fulfills optimization requests against the configured target
// tables, calling upstream at most once per distinct (effective target,
// prompt) pair for the lifetime of the cache backend.
type Resolver struct {
	targets   *domain.TargetTable
	optimizer ports.PromptOptimizer
	cache     cache.CacheService
	group     singleflight.Group
	logger    *zap.Logger
	tracer    trace.Tracer
}

func NewResolver(targets *domain.TargetTable, optimizer ports.PromptOptimizer, cacheSvc cache.CacheService, logger *zap.Logger) *Resolver {
	return &Resolver{
		targets:   targets,
		optimizer: optimizer,
		cache:     cacheSvc,
		logger:    logger,
		tracer:    otel.Tracer("optimizer/resolver"),
	}
}

// Targets exposes the configured table for handlers and the CLI.
func (r *Resolver) Targets() *domain.TargetTable {
	return r.targets
}

// OptimizerName reports which capability adapter backs this resolver.
func (r *Resolver) OptimizerName() string {
	return r.optimizer.Name()
}

// Resolve optimizes prompt for target. Redirected targets are served from
// the substitute's cache slot and relabeled, so two unsupported targets
// sharing one substitute collapse to a single upstream call per prompt.
func (r *Resolver) Resolve(ctx context.Context, prompt, target string) (domain.Result, error) {
	if prompt == "" {
		return domain.Result{}, domain.ErrEmptyPrompt
	}

	effective, rule, err := r.targets.Resolve(target)
	if err != nil {
		return domain.Result{}, err
	}

	result, err := r.resolveEffective(ctx, prompt, effective)
	if err != nil {
		return domain.Result{}, err
	}

	if rule != nil {
		r.logger.Info("reusing optimization from substitute target",
			zap.String("requested", target),
			zap.String("substitute", effective),
			zap.String("reason", rule.Reason),
		)
		return result.RelabelFor(target), nil
	}

	return result, nil
}

// resolveEffective runs the cache-or-call sequence keyed on the effective
// target. Concurrent misses for one key coalesce into a single upstream call.
func (r *Resolver) resolveEffective(ctx context.Context, prompt, effective string) (domain.Result, error) {
	key := cacheKey(effective, prompt)

	var cached domain.Result
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		r.logger.Debug("optimization cache hit", zap.String("target", effective))
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("cache read failed, calling upstream", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		// Another caller may have populated the key while we waited on the
		// flight group.
		var again domain.Result
		if err := r.cache.Get(ctx, key, &again); err == nil {
			return again, nil
		}

		result, err := r.callUpstream(ctx, prompt, effective)
		if err != nil {
			// No cache write on failure: a later attempt with the same key
			// goes back upstream.
			return nil, err
		}

		if err := r.cache.Set(ctx, key, result, 0); err != nil {
			r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
		return result, nil
	})
	if err != nil {
		return domain.Result{}, err
	}

	return v.(domain.Result), nil
}

func (r *Resolver) callUpstream(ctx context.Context, prompt, effective string) (domain.Result, error) {
	ctx, span := r.tracer.Start(ctx, "optimizer.Optimize", trace.WithAttributes(
		attribute.String("optimizer.target", effective),
		attribute.Int("optimizer.prompt_length", len(prompt)),
	))
	defer span.End()

	start := time.Now()
	upstream, err := r.optimizer.Optimize(ctx, prompt, effective)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("upstream optimization failed",
			zap.String("target", effective),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return domain.Result{}, &domain.UpstreamError{Target: effective, Err: err}
	}
	if upstream.Optimized == "" {
		err := &domain.UpstreamError{Target: effective, Err: domain.ErrEmptyOptimizedPrompt}
		span.RecordError(err)
		return domain.Result{}, err
	}

	result := domain.NewResult(prompt, effective, upstream)
	r.logger.Info("optimization complete",
		zap.String("target", effective),
		zap.Int("original_length", result.OriginalLength),
		zap.Int("optimized_length", result.OptimizedLength),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// cacheKey hashes the prompt so equal text maps to the same key on every
// backend.
func cacheKey(target, prompt string) string {
	digest := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("opt:%s:%s", target, hex.EncodeToString(digest[:]))
}
