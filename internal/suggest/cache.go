package suggest

import "strings"

// Cache holds every name received from a Source, in arrival order.
// Entries are never removed and duplicates are kept.
//
// A Cache is owned by a single goroutine; only the pending channel is
// shared with the producer.
type Cache struct {
	items   []string
	pending <-chan string
	drained bool
}

// NewCache creates a Cache fed by pending. A nil channel yields a cache
// that never grows.
func NewCache(pending <-chan string) *Cache {
	return &Cache{
		pending: pending,
		drained: pending == nil,
	}
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	return len(c.items)
}

// Drained reports whether the pending channel has been closed and emptied.
func (c *Cache) Drained() bool {
	return c.drained
}

// IngestOne moves at most one pending name into the cache without blocking.
// It reports whether a name was added.
func (c *Cache) IngestOne() bool {
	if c.drained {
		return false
	}
	select {
	case name, ok := <-c.pending:
		if !ok {
			c.drained = true
			return false
		}
		c.items = append(c.items, name)
		return true
	default:
		return false
	}
}

// Search returns every cached name starting with prefix, in cache order.
func (c *Cache) Search(prefix string) []string {
	var matches []string
	for _, name := range c.items {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// PullMore blocks on the pending channel, appending every name it receives,
// until one starting with prefix arrives (true) or the channel is drained
// (false).
func (c *Cache) PullMore(prefix string) bool {
	if c.drained {
		return false
	}
	for name := range c.pending {
		c.items = append(c.items, name)
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	c.drained = true
	return false
}

// Lookup searches for prefix, pulling more names once if nothing matched.
// An empty prefix never matches and never blocks.
func (c *Cache) Lookup(prefix string) []string {
	if prefix == "" {
		return nil
	}
	matches := c.Search(prefix)
	if len(matches) == 0 && c.PullMore(prefix) {
		matches = c.Search(prefix)
	}
	return matches
}
