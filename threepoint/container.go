package threepoint

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

// Container is ThreePointSusceptibilityContainer (SPEC_FULL.md supplemented
// feature): a container.Container2 of ThreePointSusceptibility instances
// keyed by the two fermionic single-particle indices (i, j), for a fixed
// channel and closing quadratic operator b.
type Container struct {
	inner *container.Container2[*ThreePointSusceptibility]
}

// NewContainer builds a Container backed by ops and b, computing each
// accessed ThreePointSusceptibility over comm on demand.
func NewContainer(channel Channel, sc *hilbert.StatesClassification, ham *hamiltonian.Hamiltonian, dm *densitymatrix.DensityMatrix, ops *fieldop.Container, b *fieldop.MonomialOperator, tol linalg.Tolerances, thermal lifecycle.Thermal, comm mpicomm.Comm) *Container {
	build := func(i, j int) *ThreePointSusceptibility {
		f1, ok := ops.CreationOperator(i)
		if !ok {
			return nil
		}
		f2, ok := ops.AnnihilationOperator(j)
		if !ok {
			return nil
		}
		t, err := NewThreePointSusceptibility(channel, sc, ham, dm, f1, f2, b, tol, thermal)
		if err != nil {
			return nil
		}
		if err := t.Compute(comm); err != nil {
			return nil
		}
		return t
	}
	return &Container{inner: container.NewContainer2(build)}
}

// Get returns the ThreePointSusceptibility for (i, j), building it on first access.
func (c *Container) Get(i, j int) *ThreePointSusceptibility { return c.inner.Get(i, j) }
