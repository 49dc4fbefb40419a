package raft

import "github.com/raftlab/raft/transport"

// raftState is every field the persist barrier and role-entry handlers
// touch. Persistent fields (term, votedFor) are flushed via persist() before
// any action that depends on them becomes externally observable; everything
// else is volatile and reset on role change as spec §3 describes.
type raftState struct {
	role Role

	// persistent (survive restart; flushed by persist())
	term     uint64
	votedFor transport.ServerID

	// volatile
	commitIndex uint64
	lastApplied uint64

	// candidate-only: who has granted a vote this term, including self.
	votesGranted map[transport.ServerID]bool

	// leader-only: replication bookkeeping and pending client replies.
	// nil outside of Leader.
	nextIndex  map[transport.ServerID]uint64
	matchIndex map[transport.ServerID]uint64
	froms      map[uint64]chan callResult
}

// callResult is what a pending client Submit is eventually resolved with.
type callResult struct {
	Value []byte
	Err   error
}

// Status is a read-only snapshot of engine state, safe to read from any
// goroutine (see Raft.GetState). It is the one place the engine breaks its
// own single-actor rule, mirroring the mutex-guarded accessors every
// reference implementation in the retrieval pack exposes for exactly this
// purpose.
type Status struct {
	Role        Role
	Term        uint64
	VotedFor    transport.ServerID
	CommitIndex uint64
	LastApplied uint64
}
