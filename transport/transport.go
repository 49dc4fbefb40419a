// Package transport defines the message schema (spec §6.2) and the
// best-effort delivery contract the engine relies on. A Transport may drop,
// duplicate, delay, or reorder messages; it never blocks the engine that
// calls Cast.
package transport

import "github.com/raftlab/raft/store"

// ServerID names a cohort member.
type ServerID string

// RequestVoteRequest is broadcast by a candidate.
type RequestVoteRequest struct {
	Term         uint64
	Source       ServerID
	LastLogIndex uint64
	LastLogTerm  uint64
}

// RequestVoteResponse answers a RequestVoteRequest.
type RequestVoteResponse struct {
	Term        uint64
	Source      ServerID
	VoteGranted bool
}

// AppendEntriesRequest is sent by a leader, as a heartbeat (Entries == nil)
// or carrying a batch of log entries to replicate.
type AppendEntriesRequest struct {
	Term         uint64
	Source       ServerID
	PrevLogIndex uint64
	PrevLogTerm  uint64
	Entries      []store.Entry
	CommitIndex  uint64
}

// AppendEntriesResponse answers an AppendEntriesRequest.
type AppendEntriesResponse struct {
	Term       uint64
	Source     ServerID
	Success    bool
	MatchIndex uint64
}

// Handler is how a Transport hands an inbound message to its owning engine.
// It must not block for long: the engine's Deliver is expected to enqueue
// the message and return.
type Handler func(msg interface{})

// Transport delivers messages between named peers. Cast is fire-and-forget:
// it does not report whether, or when, peer received msg.
type Transport interface {
	Cast(peer ServerID, msg interface{})
}
