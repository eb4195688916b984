package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/store/cache"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache/memory"
)

type payload struct {
	Value string `json:"value"`
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Value: "v"}, 0))

	var got payload
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, "v", got.Value)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_MissingKey(t *testing.T) {
	c := memory.NewMemoryCache()

	var got payload
	err := c.Get(context.Background(), "nope", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Value: "v"}, 0))
	time.Sleep(5 * time.Millisecond)

	var got payload
	assert.NoError(t, c.Get(ctx, "k", &got))
}

func TestMemoryCache_TTLExpires(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Value: "v"}, time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := memory.NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Value: "v"}, 0))
	require.NoError(t, c.Delete(ctx, "k"))

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.ErrCacheMiss)
}
