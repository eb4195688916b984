package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/internal/adapters/optimizer/mock"
	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/services"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache/memory"
)

func testTable(t *testing.T) *domain.TargetTable {
	t.Helper()
	table, err := domain.NewTargetTable(
		[]string{"amazon.nova-lite-v1:0", "amazon.nova-pro-v1:0"},
		map[string]domain.RedirectRule{
			"amazon.nova-2-lite-v1:0": {
				Substitute: "amazon.nova-lite-v1:0",
				Reason:     "not yet supported, reusing Nova Lite 1.0 optimizations",
			},
		},
	)
	require.NoError(t, err)
	return table
}

func newTestResolver(t *testing.T) (*services.Resolver, *mock.Adapter) {
	t.Helper()
	optimizer := mock.New()
	resolver := services.NewResolver(testTable(t), optimizer, memory.NewMemoryCache(), zap.NewNop())
	return resolver, optimizer
}

func TestResolve_CallsUpstreamOncePerPrompt(t *testing.T) {
	resolver, optimizer := newTestResolver(t)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, "hello", "amazon.nova-lite-v1:0")
	require.NoError(t, err)

	second, err := resolver.Resolve(ctx, "hello", "amazon.nova-lite-v1:0")
	require.NoError(t, err)

	assert.Equal(t, int64(1), optimizer.Calls())
	assert.Equal(t, first.Optimized, second.Optimized)

	// A different prompt for the same target is a distinct key.
	_, err = resolver.Resolve(ctx, "goodbye", "amazon.nova-lite-v1:0")
	require.NoError(t, err)
	assert.Equal(t, int64(2), optimizer.Calls())
}

func TestResolve_RedirectedTargetIsRelabeled(t *testing.T) {
	resolver, _ := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), "hello", "amazon.nova-2-lite-v1:0")
	require.NoError(t, err)

	assert.Equal(t, "amazon.nova-2-lite-v1:0", res.RequestedTarget)
	assert.Equal(t, "amazon.nova-lite-v1:0", res.EffectiveTarget)
	assert.Equal(t, domain.RedirectedMethod("amazon.nova-lite-v1:0"), res.Method)
}

func TestResolve_RedirectSharesSubstituteCacheSlot(t *testing.T) {
	resolver, optimizer := newTestResolver(t)
	ctx := context.Background()

	direct, err := resolver.Resolve(ctx, "hello", "amazon.nova-lite-v1:0")
	require.NoError(t, err)

	redirected, err := resolver.Resolve(ctx, "hello", "amazon.nova-2-lite-v1:0")
	require.NoError(t, err)

	// One upstream call serves both targets; only the labels differ.
	assert.Equal(t, int64(1), optimizer.Calls())
	assert.Equal(t, direct.Optimized, redirected.Optimized)
	assert.Equal(t, direct.Analysis, redirected.Analysis)
	assert.Equal(t, domain.MethodDirect, direct.Method.Kind)
	assert.Equal(t, domain.MethodRedirected, redirected.Method.Kind)
}

func TestResolve_UnknownTargetNeverCallsUpstream(t *testing.T) {
	resolver, optimizer := newTestResolver(t)

	_, err := resolver.Resolve(context.Background(), "hello", "anthropic.claude-v9")
	var unknown *domain.UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, int64(0), optimizer.Calls())
}

func TestResolve_EmptyPromptRejected(t *testing.T) {
	resolver, optimizer := newTestResolver(t)

	_, err := resolver.Resolve(context.Background(), "", "amazon.nova-lite-v1:0")
	assert.ErrorIs(t, err, domain.ErrEmptyPrompt)
	assert.Equal(t, int64(0), optimizer.Calls())
}

// flakyOptimizer fails the first n calls, then delegates to the mock adapter.
type flakyOptimizer struct {
	inner    *mock.Adapter
	failures int
	calls    int
}

func (f *flakyOptimizer) Name() string { return "flaky" }

func (f *flakyOptimizer) Optimize(ctx context.Context, prompt, target string) (domain.UpstreamResult, error) {
	f.calls++
	if f.calls <= f.failures {
		return domain.UpstreamResult{}, errors.New("throttled")
	}
	return f.inner.Optimize(ctx, prompt, target)
}

func TestResolve_FailureIsNotCached(t *testing.T) {
	flaky := &flakyOptimizer{inner: mock.New(), failures: 1}
	resolver := services.NewResolver(testTable(t), flaky, memory.NewMemoryCache(), zap.NewNop())
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "hello", "amazon.nova-lite-v1:0")
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "amazon.nova-lite-v1:0", upstream.Target)

	// The failed attempt left no cache entry, so the retry goes upstream
	// again and succeeds.
	res, err := resolver.Resolve(ctx, "hello", "amazon.nova-lite-v1:0")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Optimized)
	assert.Equal(t, 2, flaky.calls)
}

// emptyOptimizer completes without producing any optimized text.
type emptyOptimizer struct{}

func (emptyOptimizer) Name() string { return "empty" }

func (emptyOptimizer) Optimize(ctx context.Context, prompt, target string) (domain.UpstreamResult, error) {
	return domain.UpstreamResult{Analysis: "analysis only"}, nil
}

func TestResolve_EmptyUpstreamResponseIsAnError(t *testing.T) {
	resolver := services.NewResolver(testTable(t), emptyOptimizer{}, memory.NewMemoryCache(), zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "hello", "amazon.nova-lite-v1:0")
	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.ErrorIs(t, err, domain.ErrEmptyOptimizedPrompt)
}
