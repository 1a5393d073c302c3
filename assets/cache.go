package assets

// Cache maps descriptors to their single live asset. It holds the canonical
// slot only; eviction happens through Manager.Unload.
type Cache struct {
	entries map[Descriptor]Asset
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Descriptor]Asset)}
}

// Get returns the asset cached for d.
func (c *Cache) Get(d Descriptor) (Asset, bool) {
	a, ok := c.entries[d]
	return a, ok
}

// Put stores a under d, replacing any previous entry.
func (c *Cache) Put(d Descriptor, a Asset) {
	c.entries[d] = a
}

// Remove deletes the entry for d.
func (c *Cache) Remove(d Descriptor) {
	delete(c.entries, d)
}

// Len returns the number of cached assets.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Each calls fn for every entry. fn must not mutate the cache.
func (c *Cache) Each(fn func(Descriptor, Asset)) {
	for d, a := range c.entries {
		fn(d, a)
	}
}

// drain empties the cache and returns what it held.
func (c *Cache) drain() []Asset {
	out := make([]Asset, 0, len(c.entries))
	for _, a := range c.entries {
		out = append(out, a)
	}
	clear(c.entries)
	return out
}
