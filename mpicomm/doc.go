// Package mpicomm models the MPI transport collaborator of spec §6 as a
// narrow Comm interface, and provides a master/worker job Dispatcher (spec
// §5) on top of it. No real MPI binding exists in the pack this module was
// grounded on, so two in-process implementations stand in for the collaborator:
//
//   - NullComm: a single rank, used by default so every package works
//     correctly with no MPI setup at all.
//   - LocalComm: goroutines-as-ranks over buffered channels, for exercising
//     the dispatcher's master/worker protocol and TermList broadcast without
//     a real cluster.
//
// This mirrors the teacher's core.Graph concurrency discipline (§core/doc.go:
// "separate sync.RWMutex ... to minimize lock contention") generalized from
// protecting one mutable graph to coordinating independent rank goroutines.
package mpicomm
