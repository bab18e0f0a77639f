package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "reports:dashboard:today", []byte(`{"a":1}`), time.Minute))

	val, ok, err := c.Get(ctx, "reports:dashboard:today")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(val))

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	now = now.Add(2 * time.Second)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_InvalidatePrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, ReportsPrefix+"dashboard:today", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, ReportsPrefix+"creditors", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "feeds:list", []byte("3"), 0))

	require.NoError(t, c.InvalidatePrefix(ctx, ReportsPrefix))

	_, ok, _ := c.Get(ctx, ReportsPrefix+"creditors")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "feeds:list")
	assert.True(t, ok)
}
