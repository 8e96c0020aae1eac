package mpicomm

const (
	tagOrder      = 1
	tagDone       = 2
	tagResultJob  = 3
	orderTerm     = -1
)

// DispatchEvent is reported to an optional progress callback as jobs finish;
// it replaces an injected logging dependency the teacher avoids (SPEC_FULL.md
// AMBIENT STACK: "logging is a caller concern, not a library one").
type DispatchEvent struct {
	JobID  int
	Worker int
}

// Job is one unit of work dispatched by the master to an idle worker.
type Job struct {
	ID  int
	Run func()
}

// Dispatcher implements the master/worker job queue of spec §5: "the master
// holds a FIFO of job ids, dispatches the next id to any worker that reports
// idle, and marks the master finished when all ids are drained and all
// workers acknowledged; each worker loops: receive an order ..., perform the
// job, report completion."
type Dispatcher struct {
	Comm    Comm
	OnEvent func(DispatchEvent)
}

// NewDispatcher wraps comm. If comm is nil, NullComm{} is used (single-rank,
// sequential execution of every job on the calling goroutine).
func NewDispatcher(comm Comm) *Dispatcher {
	if comm == nil {
		comm = NullComm{}
	}
	return &Dispatcher{Comm: comm}
}

// Run dispatches jobs across the communicator: on rank 0 it acts as master
// (if Size() > 1) or runs every job locally (RunLocal, spec's "no-master"
// mode); on other ranks it loops as a worker running jobs looked up in
// byID. jobs must carry the same IDs on all ranks that call Run together
// (the Run closures may differ), since the master only ever sends IDs.
func (d *Dispatcher) Run(jobs []Job) {
	if d.Comm.Size() <= 1 {
		d.RunLocal(jobs)
		return
	}
	byID := make(map[int]Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	if d.Comm.Rank() == 0 {
		d.runMaster(jobs)
		return
	}
	d.runWorker(byID)
}

// RunLocal executes every job on the current goroutine, in order, with no
// master/worker protocol at all -- the degenerate single-rank case
// (original_source/test/mpi_dispatcher_test_nomaster.cpp).
func (d *Dispatcher) RunLocal(jobs []Job) {
	for _, j := range jobs {
		j.Run()
		if d.OnEvent != nil {
			d.OnEvent(DispatchEvent{JobID: j.ID, Worker: 0})
		}
	}
}

func (d *Dispatcher) runMaster(jobs []Job) {
	size := d.Comm.Size()
	queue := make([]int, len(jobs))
	for i, j := range jobs {
		queue[i] = j.ID
	}
	workers := size - 1
	next := 0
	finished := 0
	stopped := make([]bool, size)
	// prime every worker with one job (or termination if none remains).
	for w := 1; w <= workers; w++ {
		if next >= len(queue) {
			stopped[w] = true
			finished++
		}
		d.sendOrder(w, &next, queue)
	}
	for finished < workers {
		for w := 1; w <= workers; w++ {
			if stopped[w] {
				continue
			}
			msg, err := d.Comm.Recv(w, tagDone)
			if err != nil {
				continue
			}
			if d.OnEvent != nil {
				id, _ := msg.(int)
				d.OnEvent(DispatchEvent{JobID: id, Worker: w})
			}
			if next >= len(queue) {
				_ = d.Comm.Send(w, tagOrder, orderTerm)
				stopped[w] = true
				finished++
			} else {
				d.sendOrder(w, &next, queue)
			}
		}
	}
}

func (d *Dispatcher) sendOrder(worker int, next *int, queue []int) {
	if *next >= len(queue) {
		_ = d.Comm.Send(worker, tagOrder, orderTerm)
		return
	}
	_ = d.Comm.Send(worker, tagOrder, queue[*next])
	*next++
}

func (d *Dispatcher) runWorker(byID map[int]Job) {
	for {
		msg, err := d.Comm.Recv(0, tagOrder)
		if err != nil {
			return
		}
		id, _ := msg.(int)
		if id == orderTerm {
			return
		}
		if job, ok := byID[id]; ok {
			job.Run()
		}
		_ = d.Comm.Send(0, tagDone, id)
	}
}

// ParallelFor is a convenience wrapper used by Hamiltonian.Prepare/Compute,
// MonomialOperator.Compute, and every correlator's assembly step: it runs fn
// for each index in [0, n) as a Job distributed across comm's ranks. Per spec
// §5 ("within a rank, computation is single-threaded cooperative"), no
// goroutine fan-out happens within a single rank: the single-rank case below
// simply runs every index in order on the calling goroutine.
func ParallelFor(comm Comm, n int, fn func(i int)) {
	if comm == nil || comm.Size() <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	jobs := make([]Job, n)
	for i := 0; i < n; i++ {
		i := i
		jobs[i] = Job{ID: i, Run: func() { fn(i) }}
	}
	NewDispatcher(comm).Run(jobs)
}
