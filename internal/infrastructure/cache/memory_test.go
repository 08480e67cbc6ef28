package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscan/backend/internal/domain"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(time.Hour)
	t.Cleanup(c.Close)
	return c
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve analysis json",
			key:   "analysis:1",
			value: []byte(`{"score":0.74,"verdict":"eco_friendly"}`),
			ttl:   time.Minute,
		},
		{
			name:  "store and retrieve empty value",
			key:   "analysis:2",
			value: []byte{},
			ttl:   time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, cache.Set(ctx, tt.key, tt.value, tt.ttl))

			got, err := cache.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	exists, err := cache.Exists(ctx, "short")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryCache_RejectsNonPositiveTTL(t *testing.T) {
	cache := newTestCache(t)

	err := cache.Set(context.Background(), "k", []byte("v"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, cache.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	got[0] = 'Y'
	again, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(again))
}

func TestMemoryCache_Get_CacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "non-existent-key")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "delete-test", []byte("value"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "delete-test"))

	_, err := cache.Get(ctx, "delete-test")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_Exists(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	exists, err := cache.Exists(ctx, "exists-test")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.Set(ctx, "exists-test", []byte("value"), time.Minute))

	exists, err = cache.Exists(ctx, "exists-test")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "live", []byte("1"), time.Hour))
	require.NoError(t, cache.Set(ctx, "dead", []byte("2"), time.Millisecond))

	removed := cache.removeExpired(time.Now().Add(time.Second))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	assert.Equal(t, 0, cache.Size())
	for i := 0; i < 5; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), []byte{byte(i)}, time.Minute))
	}
	assert.Equal(t, 5, cache.Size())

	require.NoError(t, cache.Delete(ctx, "k0"))
	assert.Equal(t, 4, cache.Size())

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
	_, err := cache.Get(ctx, "k1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	cache.Close()
	cache.Close()

	require.NoError(t, cache.Set(context.Background(), "k", []byte("v"), time.Minute))
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", id)
			assert.NoError(t, cache.Set(ctx, key, []byte(key), time.Minute))
			got, err := cache.Get(ctx, key)
			assert.NoError(t, err)
			assert.Equal(t, key, string(got))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, cache.Size())
}
