package container

// Evaluator4 is anything a Container4 can cache: a four-point correlator
// object evaluated at a Matsubara-frequency triple.
type Evaluator4 interface {
	Eval(n1, n2, n3 int) complex128
}

// Symmetry4 is one of the index-permutation equivalences IndexContainer4
// exploits (spec §4.11): given the canonical (i,j,k,l) an entry was computed
// for, Permute gives the equivalent tuple, Sign the known amplitude sign
// flip, and PermuteFreq how to remap the Matsubara triple passed to Eval so
// the canonical entry answers the query correctly.
type Symmetry4 struct {
	Name        string
	Permute     func(i, j, k, l int) (int, int, int, int)
	Sign        float64
	PermuteFreq func(n1, n2, n3 int) (int, int, int)
}

func identityFreq(n1, n2, n3 int) (int, int, int) { return n1, n2, n3 }

// StandardSymmetries4 returns four index permutations: identity, swap
// i<->j, swap k<->l, and both swaps. No particle-conjugate counterparts are
// included, so a computed entry answers lookups for at most four tuples.
func StandardSymmetries4() []Symmetry4 {
	return []Symmetry4{
		{Name: "identity", Permute: func(i, j, k, l int) (int, int, int, int) { return i, j, k, l }, Sign: 1, PermuteFreq: identityFreq},
		{Name: "swap_ij", Permute: func(i, j, k, l int) (int, int, int, int) { return j, i, k, l }, Sign: -1, PermuteFreq: func(n1, n2, n3 int) (int, int, int) { return n2, n1, n3 }},
		{Name: "swap_kl", Permute: func(i, j, k, l int) (int, int, int, int) { return i, j, l, k }, Sign: -1, PermuteFreq: func(n1, n2, n3 int) (int, int, int) { return n1, n2, n1 + n2 - n3 }},
		{Name: "swap_both", Permute: func(i, j, k, l int) (int, int, int, int) { return j, i, l, k }, Sign: 1, PermuteFreq: func(n1, n2, n3 int) (int, int, int) { return n2, n1, n1 + n2 - n3 }},
	}
}

type key4 struct{ i, j, k, l int }

// Container4 is a sparse cache of four-index correlator objects keyed by
// (i, j, k, l), exploiting Symmetries so one computed entry answers lookups
// for every equivalent tuple via an evaluation-time decorator.
type Container4[V Evaluator4] struct {
	build      func(i, j, k, l int) V
	Symmetries []Symmetry4
	cache      map[key4]V
}

// NewContainer4 builds a Container4 using the standard symmetry set.
func NewContainer4[V Evaluator4](build func(i, j, k, l int) V) *Container4[V] {
	return &Container4[V]{build: build, Symmetries: StandardSymmetries4(), cache: map[key4]V{}}
}

// decorated wraps a cached V with the sign and frequency permutation needed
// to answer a query tuple that is only equivalent to, not equal to, the
// tuple V was built for.
type decorated[V Evaluator4] struct {
	inner V
	sign  float64
	freq  func(n1, n2, n3 int) (int, int, int)
}

func (d decorated[V]) Eval(n1, n2, n3 int) complex128 {
	a, b, c := d.freq(n1, n2, n3)
	return complex(d.sign, 0) * d.inner.Eval(a, b, c)
}

// Get returns an Evaluator4 for (i, j, k, l): either a direct cache hit, an
// equivalent entry found via Symmetries and wrapped in a sign/frequency
// decorator, or a freshly built entry inserted under its canonical tuple.
func (c *Container4[V]) Get(i, j, k, l int) Evaluator4 {
	if v, ok := c.cache[key4{i, j, k, l}]; ok {
		return v
	}
	for _, sym := range c.Symmetries {
		pi, pj, pk, pl := sym.Permute(i, j, k, l)
		if v, ok := c.cache[key4{pi, pj, pk, pl}]; ok {
			return decorated[V]{inner: v, sign: sym.Sign, freq: sym.PermuteFreq}
		}
	}
	v := c.build(i, j, k, l)
	c.cache[key4{i, j, k, l}] = v
	return v
}

// Fill eagerly populates the cache for every quadruple in indices^4 that is
// not already reachable via a symmetry of an existing entry.
func (c *Container4[V]) Fill(indices []int) {
	for _, i := range indices {
		for _, j := range indices {
			for _, k := range indices {
				for _, l := range indices {
					c.Get(i, j, k, l)
				}
			}
		}
	}
}

// Len returns the number of directly cached (non-decorated) entries.
func (c *Container4[V]) Len() int { return len(c.cache) }
