package mesh

import "sync"

// DefaultCacheSize fits a full asteroid population plus recently culled ones.
const DefaultCacheSize = 64

type cacheKey struct {
	radius float64
	seed   int64
}

// Cache memoizes generated meshes by (radius, shapeSeed). Meshes are
// immutable once built, so cached values are shared between callers.
// Safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	size  int
	items map[cacheKey]*Mesh
	order []cacheKey // Insertion order, oldest first
}

// NewCache creates a cache holding at most size meshes.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:  size,
		items: make(map[cacheKey]*Mesh, size),
	}
}

// Get returns the mesh for (radius, shapeSeed), generating it on a miss.
// When full, the oldest entry is evicted.
func (c *Cache) Get(radius float64, shapeSeed int64) *Mesh {
	k := cacheKey{radius: radius, seed: shapeSeed}

	c.mu.Lock()
	if m, ok := c.items[k]; ok {
		c.mu.Unlock()
		return m
	}
	c.mu.Unlock()

	// Generate outside the lock. Concurrent misses may build the same mesh twice.
	m := Generate(radius, shapeSeed)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[k]; ok {
		return existing
	}
	for len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}
	c.items[k] = m
	c.order = append(c.order, k)
	return m
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
