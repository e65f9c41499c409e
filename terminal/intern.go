// @focus: #terminal { intern }
package terminal

const (
	internPoolSize = 2048
	maxSequenceLen = 64

	comboCacheSize = 1024
	lruCacheSize   = 128
)

// internPool deduplicates escape sequences so repeated renditions share
// one backing array. Oversized or overflowing sequences pass through
// uninterned; correctness never depends on a cache hit.
type internPool struct {
	entries map[string][]byte

	hits, misses, passthroughs uint64
}

func newInternPool() *internPool {
	p := &internPool{
		entries: make(map[string][]byte, 256),
	}
	// Warm the pool with sequences every frame touches
	p.intern(escReset)
	p.intern(escCR)
	p.intern(escCRLF)
	return p
}

// intern returns a stable copy of seq, shared across calls
func (p *internPool) intern(seq []byte) []byte {
	if len(seq) > maxSequenceLen {
		p.passthroughs++
		return seq
	}
	if cached, ok := p.entries[string(seq)]; ok {
		p.hits++
		return cached
	}
	if len(p.entries) >= internPoolSize {
		p.passthroughs++
		return seq
	}
	p.misses++
	owned := make([]byte, len(seq))
	copy(owned, seq)
	p.entries[string(owned)] = owned
	return owned
}

// comboKey identifies a fully resolved rendition
type comboKey struct {
	fg, bg Color
	style  Attr
}

// renditionKey identifies a positioned rendition for the LRU cache
type renditionKey struct {
	fg, bg   Color
	style    Attr
	row, col int16
}

type lruEntry struct {
	key        renditionKey
	seq        []byte
	prev, next *lruEntry
}

// lruCache holds positioned cursor+rendition sequences for sub-window
// re-emission, bounded with least-recently-used eviction
type lruCache struct {
	entries    map[renditionKey]*lruEntry
	head, tail *lruEntry
	limit      int

	hits, misses, evictions uint64
}

func newLRUCache(limit int) *lruCache {
	return &lruCache{
		entries: make(map[renditionKey]*lruEntry, limit),
		limit:   limit,
	}
}

func (c *lruCache) get(key renditionKey) []byte {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil
	}
	c.hits++
	c.moveToFront(e)
	return e.seq
}

func (c *lruCache) put(key renditionKey, seq []byte) {
	if e, ok := c.entries[key]; ok {
		e.seq = seq
		c.moveToFront(e)
		return
	}
	if len(c.entries) >= c.limit {
		c.evictTail()
	}
	e := &lruEntry{key: key, seq: seq}
	c.entries[key] = e
	c.pushFront(e)
}

func (c *lruCache) pushFront(e *lruEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) moveToFront(e *lruEntry) {
	if c.head == e {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.tail == e {
		c.tail = e.prev
	}
	c.pushFront(e)
}

func (c *lruCache) evictTail() {
	e := c.tail
	if e == nil {
		return
	}
	c.evictions++
	delete(c.entries, e.key)
	c.tail = e.prev
	if c.tail != nil {
		c.tail.next = nil
	} else {
		c.head = nil
	}
}
