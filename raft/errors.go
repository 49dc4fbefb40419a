package raft

import (
	"errors"
	"fmt"
)

// ErrNotLeader is returned by Submit when called against a server that is
// not currently the leader. Recoverable by retrying against a different
// peer.
var ErrNotLeader = errors.New("raft: not the leader")

// ErrDeposed is returned to every client whose command was accepted by a
// leader that lost leadership before the command was applied. The client
// must retry; duplicate application is a concern for the state machine
// layer (or client-supplied request IDs), not this engine.
var ErrDeposed = errors.New("raft: deposed before entry was applied")

// ErrTimeout is a client-side-only condition: the engine never produces it
// itself, but Submit returns it when the caller's context expires first.
var ErrTimeout = errors.New("raft: client request timed out")

// ErrStopped is returned by Submit once the engine has stopped.
var ErrStopped = errors.New("raft: engine stopped")

// StoreError wraps any error returned by a Store operation. It is always
// fatal: the engine that produced it has already terminated. Recovery is
// operator-initiated restart (spec §7).
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("raft: store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// errUnknownEvent is fatal per spec §7 (UnknownEvent): it should only ever
// be reachable by a bug in wiring, since Deliver only accepts the four
// message types transport defines.
func errUnknownEvent(msg interface{}) error {
	return fmt.Errorf("raft: unknown event type %T", msg)
}

// errMissingEntry signals that commitIndex outran what the store can
// actually produce — a store invariant violation, always fatal.
func errMissingEntry(index uint64) error {
	return fmt.Errorf("raft: no log entry at index %d below commitIndex", index)
}
