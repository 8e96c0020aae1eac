package mpicomm

import (
	"fmt"
	"sync"
)

type envelope struct {
	tag     int
	from    int
	payload any
}

// LocalComm implements Comm with one goroutine-addressable mailbox per rank,
// all living in the current process. Construct a group with NewLocalGroup
// and hand each member's LocalComm to the goroutine playing that rank.
type LocalComm struct {
	rank   int
	size   int
	inbox  []chan envelope
	bcast  []chan any
	once   *sync.Once
	bcastN *int
	mu     *sync.Mutex
}

var _ Comm = (*LocalComm)(nil)

// NewLocalGroup builds `size` LocalComm endpoints sharing one set of
// channels, one per simulated rank.
func NewLocalGroup(size int) []*LocalComm {
	inboxes := make([]chan envelope, size)
	bcasts := make([]chan any, size)
	for i := range inboxes {
		inboxes[i] = make(chan envelope, 64)
		bcasts[i] = make(chan any, 64)
	}
	mu := &sync.Mutex{}
	n := 0
	comms := make([]*LocalComm, size)
	for i := 0; i < size; i++ {
		comms[i] = &LocalComm{
			rank: i, size: size,
			inbox: inboxes, bcast: bcasts,
			mu: mu, bcastN: &n,
		}
	}
	return comms
}

func (c *LocalComm) Rank() int { return c.rank }
func (c *LocalComm) Size() int { return c.size }

func (c *LocalComm) Send(to, tag int, payload any) error {
	if to < 0 || to >= c.size {
		return fmt.Errorf("%w: %d", ErrBadRank, to)
	}
	c.inbox[to] <- envelope{tag: tag, from: c.rank, payload: payload}
	return nil
}

func (c *LocalComm) Recv(from, tag int) (any, error) {
	if from < 0 || from >= c.size {
		return nil, fmt.Errorf("%w: %d", ErrBadRank, from)
	}
	for {
		e := <-c.inbox[c.rank]
		if e.from == from && e.tag == tag {
			return e.payload, nil
		}
		// not the awaited message: requeue and yield. This module has no
		// pipelined concurrent Recv calls within one rank, so requeuing
		// cannot livelock in practice.
		c.inbox[c.rank] <- e
	}
}

// Broadcast publishes payload (only meaningful when called on root) to every
// rank's broadcast channel and returns what that rank should see. All ranks
// must call Broadcast with the same root to rendezvous correctly.
func (c *LocalComm) Broadcast(root int, payload any) (any, error) {
	if root < 0 || root >= c.size {
		return nil, fmt.Errorf("%w: %d", ErrBadRank, root)
	}
	if c.rank == root {
		for r := 0; r < c.size; r++ {
			if r == root {
				continue
			}
			c.bcast[r] <- payload
		}
		return payload, nil
	}
	return <-c.bcast[c.rank], nil
}
