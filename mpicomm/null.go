package mpicomm

import "fmt"

// NullComm is the single-rank Comm used by default (spec's "no-master" mode,
// grounded on original_source/test/mpi_dispatcher_test_nomaster.cpp). Send
// and Recv always fail, since a single rank has no peer (a rank other than 0
// is reported as ErrBadRank); Broadcast is a no-op identity.
type NullComm struct{}

var _ Comm = NullComm{}

func (NullComm) Rank() int { return 0 }
func (NullComm) Size() int { return 1 }

func (NullComm) Send(to, _ int, _ any) error {
	if to != 0 {
		return fmt.Errorf("%w: NullComm has only rank 0, got %d", ErrBadRank, to)
	}
	return fmt.Errorf("mpicomm: NullComm cannot Send to self")
}

func (NullComm) Recv(from, _ int) (any, error) {
	if from != 0 {
		return nil, fmt.Errorf("%w: NullComm has only rank 0, got %d", ErrBadRank, from)
	}
	return nil, fmt.Errorf("mpicomm: NullComm cannot Recv from self")
}

func (NullComm) Broadcast(root int, payload any) (any, error) {
	if root != 0 {
		return nil, fmt.Errorf("%w: NullComm has only rank 0, got %d", ErrBadRank, root)
	}
	return payload, nil
}
