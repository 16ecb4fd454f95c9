package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	defaultMemoryTTL    = 24 * time.Hour
	memorySweepInterval = 5 * time.Minute
)

// MemoryCache is a process-local Client used when Redis is not configured and in tests.
type MemoryCache struct {
	mu    sync.RWMutex
	store map[string]cacheItem
	now   func() time.Time

	stopSweep context.CancelFunc
	sweepWG   sync.WaitGroup
}

type cacheItem struct {
	value      string
	expiration time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[string]cacheItem),
		now:   time.Now,
	}
}

// StartSweeper evicts expired entries every interval until ctx is done or
// Close is called.
func (m *MemoryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	if m.stopSweep != nil {
		m.mu.Unlock()
		cancel()
		return
	}
	m.stopSweep = cancel
	m.mu.Unlock()

	m.sweepWG.Add(1)
	go func() {
		defer m.sweepWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.purgeExpired()
			}
		}
	}()
}

// purgeExpired drops every expired entry and returns how many were removed.
func (m *MemoryCache) purgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, item := range m.store {
		if now.After(item.expiration) {
			delete(m.store, key)
			removed++
		}
	}
	return removed
}

// Get retrieves a value from memory cache.
func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	item, exists := m.store[key]
	m.mu.RUnlock()

	if !exists {
		return "", ErrMiss
	}

	if m.now().After(item.expiration) {
		m.mu.Lock()
		delete(m.store, key)
		m.mu.Unlock()
		return "", ErrMiss
	}

	return item.value, nil
}

// Set stores a value in memory cache. A zero expiration keeps the value for a day.
func (m *MemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var strValue string
	switch v := value.(type) {
	case string:
		strValue = v
	case []byte:
		strValue = string(v)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
		strValue = string(data)
	}

	if expiration <= 0 {
		expiration = defaultMemoryTTL
	}

	m.mu.Lock()
	m.store[key] = cacheItem{value: strValue, expiration: m.now().Add(expiration)}
	m.mu.Unlock()

	return nil
}

// Delete removes keys from memory cache.
func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}

// Increment increments a counter in memory cache.
func (m *MemoryCache) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if item, exists := m.store[key]; exists && !m.now().After(item.expiration) {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value at %q is not an integer", key)
		}
		current = parsed
	}
	current++

	m.store[key] = cacheItem{value: strconv.FormatInt(current, 10), expiration: m.now().Add(defaultMemoryTTL)}
	return current, nil
}

// Close stops the sweeper and drops every entry.
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	stop := m.stopSweep
	m.stopSweep = nil
	m.mu.Unlock()

	if stop != nil {
		stop()
	}
	m.sweepWG.Wait()

	m.mu.Lock()
	m.store = make(map[string]cacheItem)
	m.mu.Unlock()
	return nil
}
