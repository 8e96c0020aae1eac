package twoparticle

// MatsubaraCache is the cubic cache of spec §4.9, keyed by the bosonic
// transfer index (n1+n2) and two fermionic offsets (n1, n3); cache misses
// fall back to direct evaluation against the backing TwoParticleGF.
type MatsubaraCache struct {
	gf    *TwoParticleGF
	cache map[[3]int]complex128
}

// NewMatsubaraCache wraps gf with an empty cubic cache.
func NewMatsubaraCache(gf *TwoParticleGF) *MatsubaraCache {
	return &MatsubaraCache{gf: gf, cache: map[[3]int]complex128{}}
}

// Get returns chi(n1, n2, n3), computing and storing it on a cache miss. The
// key is (n1+n2, n1, n3): the bosonic transfer index plus the two fermionic
// offsets spec §4.9 names.
func (c *MatsubaraCache) Get(n1, n2, n3 int) complex128 {
	key := [3]int{n1 + n2, n1, n3}
	if v, ok := c.cache[key]; ok {
		return v
	}
	v := c.gf.AtMatsubara(n1, n2, n3)
	c.cache[key] = v
	return v
}

// Len returns the number of cached entries.
func (c *MatsubaraCache) Len() int { return len(c.cache) }
