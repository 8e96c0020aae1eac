package container

// Container2 is a sparse cache keyed by an ordered pair of indices.
type Container2[V any] struct {
	build func(i, j int) V
	cache map[[2]int]V
}

// NewContainer2 builds a Container2 that calls build(i, j) on first access.
func NewContainer2[V any](build func(i, j int) V) *Container2[V] {
	return &Container2[V]{build: build, cache: map[[2]int]V{}}
}

// Get returns the cached value for (i, j), computing and storing it on miss.
func (c *Container2[V]) Get(i, j int) V {
	key := [2]int{i, j}
	if v, ok := c.cache[key]; ok {
		return v
	}
	v := c.build(i, j)
	c.cache[key] = v
	return v
}

// Fill eagerly populates the cache for every pair in indices x indices, the
// bulk-population entry point used by original_source's container tests.
func (c *Container2[V]) Fill(indices []int) {
	for _, i := range indices {
		for _, j := range indices {
			c.Get(i, j)
		}
	}
}

// Len returns the number of cached entries.
func (c *Container2[V]) Len() int { return len(c.cache) }
