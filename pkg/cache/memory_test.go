package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheGetSetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCacheJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	type entry struct {
		Title string `json:"title"`
		Order int    `json:"order"`
	}

	require.NoError(t, SetJSON(ctx, c, "lessons", []entry{{"Greetings", 1}}, time.Minute))

	var out []entry
	require.NoError(t, GetJSON(ctx, c, "lessons", &out))
	assert.Equal(t, []entry{{"Greetings", 1}}, out)

	require.NoError(t, c.Delete(ctx, "lessons"))
	assert.ErrorIs(t, GetJSON(ctx, c, "lessons", &out), ErrMiss)
}

func TestMemoryCacheIncrementIsConcurrencySafe(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Increment(ctx, "gen")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := c.Get(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, "50", got)
}

func TestMemoryCacheIncrementRejectsNonInteger(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "gen", "abc", 0))

	_, err := c.Increment(ctx, "gen")
	assert.Error(t, err)
}

func TestMemoryCachePurgesKeysThatAreNeverReadAgain(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("lessons:v1:%d", i), "[]", time.Minute))
	}

	now = now.Add(48 * time.Hour)
	require.NoError(t, c.Set(ctx, "lessons:v2:all", "[]", time.Minute))

	assert.Equal(t, 1000, c.purgeExpired())
	assert.Len(t, c.store, 1)

	got, err := c.Get(ctx, "lessons:v2:all")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestMemoryCacheSweeperRunsUntilClosed(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "stale", "x", time.Minute))
	now = now.Add(time.Hour)

	c.StartSweeper(ctx, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.store) == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	c.mu.RLock()
	assert.Nil(t, c.stopSweep)
	c.mu.RUnlock()
}
