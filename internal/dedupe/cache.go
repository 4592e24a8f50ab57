// ABOUTME: TTL-based seen-cache for suppressing duplicate inbound events
// ABOUTME: A retried delivery of the same platform message ID is dropped before the engine sees it

package dedupe

import (
	"sync"
	"time"
)

// entry records when a key was last marked. The generation ties the entry
// to its occurrence in the order queue: re-marking an expired key bumps it,
// so eviction can tell a stale queue occurrence from the live one.
type entry struct {
	at  time.Time
	gen uint64
}

// queued is one occurrence of a key in the insertion-order queue.
type queued struct {
	key string
	gen uint64
}

// Cache remembers event keys it has seen within a TTL window, bounded in
// size. It is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	order      []queued // insertion order, oldest first
	ttl        time.Duration
	maxEntries int
	done       chan struct{}
	close      sync.Once
}

// New creates a cache that remembers keys for ttl, holding at most
// maxEntries keys. A background goroutine sweeps expired entries; Close
// stops it.
func New(ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Seen atomically checks whether key was already seen within the TTL and
// marks it if not. It returns true for a duplicate, false for a key that is
// new (and now marked). The single-call form avoids a check/mark race when
// two deliveries of the same event arrive together.
func (c *Cache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && time.Since(e.at) < c.ttl {
		return true
	}

	// Re-marking an expired key reuses its map slot, so only a brand-new
	// key can push the cache over capacity.
	if !ok && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	e.at = time.Now()
	e.gen++
	c.entries[key] = e
	c.order = append(c.order, queued{key: key, gen: e.gen})
	return false
}

// evictOldest drops entries from the front of the insertion order until one
// live entry has been removed. Queue occurrences whose generation no longer
// matches the entry are leftovers from a re-mark and are skipped, so a
// freshly refreshed key is never evicted ahead of genuinely older ones.
// Must be called with mu held.
func (c *Cache) evictOldest() {
	for len(c.order) > 0 {
		q := c.order[0]
		c.order = c.order[1:]
		if e, ok := c.entries[q.key]; ok && e.gen == q.gen {
			delete(c.entries, q.key)
			return
		}
	}
}

// janitor sweeps expired entries once a minute.
func (c *Cache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

// sweep removes all expired entries.
func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.Sub(e.at) >= c.ttl {
			delete(c.entries, key)
		}
	}

	// Compact the order queue so it doesn't grow with dead occurrences.
	live := c.order[:0]
	for _, q := range c.order {
		if e, ok := c.entries[q.key]; ok && e.gen == q.gen {
			live = append(live, q)
		}
	}
	c.order = live
}

// Close stops the background sweep. It is safe to call multiple times.
func (c *Cache) Close() {
	c.close.Do(func() {
		close(c.done)
	})
}
