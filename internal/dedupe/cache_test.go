// ABOUTME: Tests for the duplicate-event seen-cache
// ABOUTME: Validates TTL expiry, size-bounded eviction, sweep, and concurrency

package dedupe

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_Seen_NewKey(t *testing.T) {
	cache := New(5*time.Minute, 100)
	defer cache.Close()

	assert.False(t, cache.Seen("event-1"), "first sighting is not a duplicate")
	assert.True(t, cache.Seen("event-1"), "second sighting is a duplicate")
}

func TestCache_Seen_Expiry(t *testing.T) {
	cache := New(10*time.Millisecond, 100)
	defer cache.Close()

	assert.False(t, cache.Seen("event-1"))

	time.Sleep(20 * time.Millisecond)

	// Expired keys count as new again.
	assert.False(t, cache.Seen("event-1"))
}

func TestCache_Eviction(t *testing.T) {
	cache := New(5*time.Minute, 3)
	defer cache.Close()

	cache.Seen("k1")
	cache.Seen("k2")
	cache.Seen("k3")

	// Adding a fourth evicts the oldest.
	cache.Seen("k4")

	assert.False(t, cache.Seen("k1"), "oldest key should have been evicted")
	assert.True(t, cache.Seen("k2"))
	assert.True(t, cache.Seen("k3"))
	assert.True(t, cache.Seen("k4"))
}

func TestCache_Eviction_AfterExpiredReMark(t *testing.T) {
	cache := New(time.Minute, 3)
	defer cache.Close()

	cache.Seen("k1")
	cache.Seen("k2")
	cache.Seen("k3")

	// Age k1 past the TTL so its next sighting counts as new again.
	cache.mu.Lock()
	e := cache.entries["k1"]
	e.at = e.at.Add(-2 * time.Minute)
	cache.entries["k1"] = e
	cache.mu.Unlock()

	assert.False(t, cache.Seen("k1"), "expired key counts as new")

	// Capacity pressure must evict k2, the oldest live key, not the
	// just-refreshed k1 whose stale queue occurrence sits at the front.
	cache.Seen("k4")

	assert.True(t, cache.Seen("k1"), "just-refreshed key must survive eviction")
	assert.True(t, cache.Seen("k3"))
	assert.True(t, cache.Seen("k4"))
	assert.False(t, cache.Seen("k2"), "oldest live key should have been evicted")
}

func TestCache_Sweep(t *testing.T) {
	cache := New(10*time.Millisecond, 100)
	defer cache.Close()

	for i := 0; i < 10; i++ {
		cache.Seen(fmt.Sprintf("k%d", i))
	}
	time.Sleep(20 * time.Millisecond)

	cache.sweep()

	cache.mu.Lock()
	assert.Empty(t, cache.entries)
	assert.Empty(t, cache.order)
	cache.mu.Unlock()
}

func TestCache_ConcurrentSeen(t *testing.T) {
	cache := New(5*time.Minute, 1000)
	defer cache.Close()

	// Exactly one of N concurrent sightings of the same key may win.
	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !cache.Seen("same-event") {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, firsts)
}

func TestCache_Close_Idempotent(t *testing.T) {
	cache := New(time.Minute, 10)
	cache.Close()
	cache.Close()
}
