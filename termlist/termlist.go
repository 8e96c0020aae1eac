package termlist

// Policies bundles the four pluggable behaviors spec §3 attaches to a
// TermList instance.
type Policies[T any] struct {
	// Hash must produce equal values for any two terms KeyEqual considers similar.
	Hash func(t T) uint64
	// KeyEqual is the similarity predicate (tolerance on pole positions).
	KeyEqual func(a, b T) bool
	// Merge folds add into *existing in place (weighted pole averaging + summed
	// residues, spec §3's "t' += t"); multiplicity is how many terms *existing
	// represents once add is folded in (2 on the first merge), so 1/multiplicity
	// is add's weight in a running mean.
	Merge func(existing *T, add T, multiplicity int)
	// IsNegligible receives the current term and the container size *after*
	// the pending insert/update, so callers can scale tolerance as tol/(n+1).
	IsNegligible func(t T, sizeAfter int) bool
}

type entry[T any] struct {
	term         T
	multiplicity int
}

// TermList is a set of approximately-equal-deduplicated terms.
type TermList[T any] struct {
	policies Policies[T]
	buckets  map[uint64][]*entry[T]
	size     int
}

// New constructs an empty TermList governed by policies.
func New[T any](policies Policies[T]) *TermList[T] {
	return &TermList[T]{policies: policies, buckets: map[uint64][]*entry[T]{}}
}

// Len returns the number of distinct terms currently stored.
func (l *TermList[T]) Len() int { return l.size }

// Terms returns every stored term (merged values), in unspecified order.
func (l *TermList[T]) Terms() []T {
	out := make([]T, 0, l.size)
	for _, bucket := range l.buckets {
		for _, e := range bucket {
			out = append(out, e.term)
		}
	}
	return out
}

// AddTerm inserts t, or merges it into an existing similar term (spec §4.5):
// on hash hit with a KeyEqual match, Merge folds t into the match in place;
// the merged (or newly inserted) term is then tested by IsNegligible and
// dropped if it reports true.
func (l *TermList[T]) AddTerm(t T) {
	h := l.policies.Hash(t)
	bucket := l.buckets[h]
	for i, e := range bucket {
		if l.policies.KeyEqual(e.term, t) {
			e.multiplicity++
			l.policies.Merge(&e.term, t, e.multiplicity)
			if l.policies.IsNegligible(e.term, l.size) {
				l.buckets[h] = append(bucket[:i], bucket[i+1:]...)
				l.size--
			}
			return
		}
	}
	if l.policies.IsNegligible(t, l.size+1) {
		return
	}
	l.buckets[h] = append(bucket, &entry[T]{term: t, multiplicity: 1})
	l.size++
}

// AddTerms inserts every term of ts in order.
func (l *TermList[T]) AddTerms(ts []T) {
	for _, t := range ts {
		l.AddTerm(t)
	}
}

// Reset discards every stored term, used by Broadcast receivers.
func (l *TermList[T]) Reset() {
	l.buckets = map[uint64][]*entry[T]{}
	l.size = 0
}

// Broadcaster is the narrow slice of mpicomm.Comm TermList.Broadcast needs;
// declared locally so termlist does not import mpicomm.
type Broadcaster interface {
	Broadcast(root int, payload any) (any, error)
}

// Broadcast scatters the whole container from root to every other rank
// (spec §4.5/§5): the terms held on root are broadcast as a slice and every
// rank (root included) ends up with that slice re-inserted through AddTerm,
// so every rank's TermList converges to an identical state even if a
// receiver already held some (negligible) partial content.
func (l *TermList[T]) Broadcast(comm Broadcaster, root int) error {
	result, err := comm.Broadcast(root, l.Terms())
	if err != nil {
		return err
	}
	terms, _ := result.([]T)
	l.Reset()
	l.AddTerms(terms)
	return nil
}
