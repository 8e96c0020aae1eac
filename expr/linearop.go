package expr

import (
	"math/bits"

	"github.com/katalvlaran/edlat/linalg"
)

// fockOperator adapts an Expression into a linalg.LinearOperator over a
// Jordan-Wigner fermionic Fock space: bit i of the state is the occupation of
// particle index i, and the fermionic sign of acting with c_i or c^dagger_i
// is (-1)^(number of occupied indices < i), the standard Jordan-Wigner string.
type fockOperator struct {
	expr Expression
}

// ToLinearOperator wraps e as a linalg.LinearOperator over Jordan-Wigner Fock
// states. This is the "linear-operator representation that, given a state
// vector, returns its image under the operator" collaborator of spec §6.
func (e Expression) ToLinearOperator() linalg.LinearOperator {
	return fockOperator{expr: e}
}

func (f fockOperator) IsComplex() bool { return f.expr.IsComplex() }

// Apply returns the sparse image of state under f.expr.
func (f fockOperator) Apply(state linalg.FockState) map[linalg.FockState]complex128 {
	out := map[linalg.FockState]complex128{}
	for _, m := range f.expr.Monomials {
		if m.Coeff == 0 {
			continue
		}
		s := state
		coeff := m.Coeff
		ok := true
		// act right-to-left.
		for k := len(m.Operators) - 1; k >= 0; k-- {
			op := m.Operators[k]
			bit := linalg.FockState(1) << uint(op.Index)
			occupied := s&bit != 0
			switch op.Type {
			case Creation:
				if occupied {
					ok = false
				} else {
					sign := jordanWignerSign(s, op.Index)
					s |= bit
					coeff *= complex(sign, 0)
				}
			case Annihilation:
				if !occupied {
					ok = false
				} else {
					sign := jordanWignerSign(s, op.Index)
					s &^= bit
					coeff *= complex(sign, 0)
				}
			}
			if !ok {
				break
			}
		}
		if ok && coeff != 0 {
			out[s] += coeff
		}
	}
	for k, v := range out {
		if v == 0 {
			delete(out, k)
		}
	}
	return out
}

// jordanWignerSign returns (-1)^popcount(s restricted to bits < index).
func jordanWignerSign(s linalg.FockState, index int) float64 {
	mask := (linalg.FockState(1) << uint(index)) - 1
	n := bits.OnesCount64(uint64(s & mask))
	if n%2 == 0 {
		return 1
	}
	return -1
}
