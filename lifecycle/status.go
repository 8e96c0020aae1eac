package lifecycle

import "fmt"

// Status is the lifecycle stage of a computable object.
type Status int

const (
	// Constructed is the state immediately after the object's constructor
	// returns: its shape (dimensions, index sets) is known but no matrix or
	// term content has been assembled.
	Constructed Status = iota
	// Prepared means structure has been allocated and filled from the Fock
	// basis (or from referenced objects), but no numerically-heavy step
	// (diagonalization, weight normalization, residue accumulation) has run.
	Prepared
	// Computed means the object holds its final numeric content.
	Computed
)

// String implements fmt.Stringer for diagnostic messages.
func (s Status) String() string {
	switch s {
	case Constructed:
		return "Constructed"
	case Prepared:
		return "Prepared"
	case Computed:
		return "Computed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StatusMismatchError reports that an operation requires a later lifecycle
// stage than the object currently holds.
type StatusMismatchError struct {
	Object   string
	Required Status
	Actual   Status
}

func (e *StatusMismatchError) Error() string {
	return fmt.Sprintf("%s: requires status >= %s, got %s", e.Object, e.Required, e.Actual)
}

// Is makes StatusMismatchError match errors.Is(err, ErrStatusMismatch).
func (e *StatusMismatchError) Is(target error) bool {
	return target == ErrStatusMismatch
}

// ErrStatusMismatch is the sentinel matched by every StatusMismatchError.
var ErrStatusMismatch = fmt.Errorf("lifecycle: status mismatch")

// Gate embeds into every computable object to track and guard its status.
type Gate struct {
	object string
	status Status
}

// NewGate returns a Gate in the Constructed state labelled with object (used
// only in error messages, e.g. "HamiltonianPart").
func NewGate(object string) Gate {
	return Gate{object: object, status: Constructed}
}

// Status returns the current lifecycle stage.
func (g *Gate) Status() Status { return g.status }

// Advance moves the gate forward to s; skipping a stage (Constructed straight
// to Computed) is allowed. Advancing backward is a programming error and
// panics, since it can only be triggered by the object's own method bodies,
// never by caller input.
func (g *Gate) Advance(s Status) {
	if s < g.status {
		panic(fmt.Sprintf("%s: cannot move status backward from %s to %s", g.object, g.status, s))
	}
	g.status = s
}

// Require returns a *StatusMismatchError if the gate's status is below want.
func (g *Gate) Require(want Status) error {
	if g.status < want {
		return &StatusMismatchError{Object: g.object, Required: want, Actual: g.status}
	}
	return nil
}
