package greensfunction

import (
	"github.com/katalvlaran/edlat/container"
	"github.com/katalvlaran/edlat/densitymatrix"
	"github.com/katalvlaran/edlat/fieldop"
	"github.com/katalvlaran/edlat/hamiltonian"
	"github.com/katalvlaran/edlat/hilbert"
	"github.com/katalvlaran/edlat/lifecycle"
	"github.com/katalvlaran/edlat/linalg"
	"github.com/katalvlaran/edlat/mpicomm"
)

// Container is GFContainer (SPEC_FULL.md supplemented feature): a
// container.Container2 of GreensFunction instances keyed by (i, j), each
// built from a fieldop.Container's c_j, c_i+ pair and computed eagerly on
// first access.
type Container struct {
	inner *container.Container2[*GreensFunction]
}

// NewContainer builds a Container backed by ops, computing each accessed
// GreensFunction over comm on demand.
func NewContainer(sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, ops *fieldop.Container, tol linalg.Tolerances, thermal lifecycle.Thermal, comm mpicomm.Comm) *Container {
	build := func(i, j int) *GreensFunction {
		c, ok := ops.AnnihilationOperator(j)
		if !ok {
			return nil
		}
		cDag, ok := ops.CreationOperator(i)
		if !ok {
			return nil
		}
		gf, err := NewGreensFunction(sc, ham, dm, c, cDag, tol, thermal)
		if err != nil {
			return nil
		}
		if err := gf.Compute(comm); err != nil {
			return nil
		}
		return gf
	}
	return &Container{inner: container.NewContainer2(build)}
}

// Get returns G_ij, building and computing it on first access.
func (c *Container) Get(i, j int) *GreensFunction { return c.inner.Get(i, j) }

// Len returns the number of GreensFunction instances built so far.
func (c *Container) Len() int { return c.inner.Len() }
