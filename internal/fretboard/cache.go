package fretboard

import "sync"

// Cache memoizes Resolve results keyed by (digit, do-specification). The key
// space is small (7 digits times a handful of tonal centers plus tapped
// positions), so entries are never evicted; a stale do-spec simply stops
// being asked for. Resolution is pure, so recomputing a key always yields an
// identical MappedNote; the lock only protects the map itself.
type Cache struct {
	mu     sync.Mutex
	notes  map[cacheKey]MappedNote
	hits   int
	misses int
}

type cacheKey struct {
	digit int
	do    string
}

// NewCache returns an empty cache. Construct one per engine (or per test);
// there is deliberately no package-level instance.
func NewCache() *Cache {
	return &Cache{notes: make(map[cacheKey]MappedNote)}
}

// Get returns the mapped note for a scale degree under the given do-spec,
// resolving and storing it on first use.
func (c *Cache) Get(digit int, do DoSpec) MappedNote {
	key := cacheKey{digit: digit, do: do.Key()}

	c.mu.Lock()
	if note, ok := c.notes[key]; ok {
		c.hits++
		c.mu.Unlock()
		return note
	}
	c.misses++
	c.mu.Unlock()

	// Resolve outside the lock; duplicate computation of the same key is
	// harmless because resolution is deterministic.
	note := Resolve(digit, do)

	c.mu.Lock()
	c.notes[key] = note
	c.mu.Unlock()
	return note
}

// Len returns the number of distinct keys stored.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notes)
}

// Stats returns the hit and miss counters, for tests and diagnostics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
