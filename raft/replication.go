package raft

import (
	"sort"

	"github.com/raftlab/raft/transport"
)

// heartbeatTick implements spec §4.5: on every heartbeat timer expiry, send
// each peer an AppendEntries (empty for a pure heartbeat, carrying up to
// BatchSize entries otherwise), then recompute the commit index from the
// current matchIndex spread.
func (r *Raft) heartbeatTick() error {
	for _, peer := range r.cohort {
		if peer == r.self {
			continue
		}
		r.replicateTo(peer)
	}
	r.advanceLeaderCommit()
	if err := r.applyCommitted(); err != nil {
		return err
	}
	r.timerCh = r.clock.AfterHeartbeat()
	return nil
}

func (r *Raft) replicateTo(peer transport.ServerID) {
	prevLogIndex := r.nextIndex[peer] - 1
	prevLogTerm := r.termAt(prevLogIndex)
	entries := r.store.Range(prevLogIndex+1, r.config.BatchSize)

	// Per spec §4.5 and the flagged design note in §9, the wire commitIndex
	// is clamped to min(commitIndex, min(last().index, prevLogIndex+2)) —
	// the "+2" is unusual and can under-advance a follower's commit on
	// large batches, but is preserved literally.
	commit := minUint64(r.commitIndex, minUint64(r.lastIndex(), prevLogIndex+2))

	r.transport.Cast(peer, &transport.AppendEntriesRequest{
		Term:         r.term,
		Source:       r.self,
		PrevLogIndex: prevLogIndex,
		PrevLogTerm:  prevLogTerm,
		Entries:      entries,
		CommitIndex:  commit,
	})
}

// advanceLeaderCommit implements spec §4.5's commit advancement: the
// candidate index N is the (size/2)-th element (0-based) of the sorted
// multiset {last().index} ∪ matchIndex values. Per the design note in §9,
// this is lists:nth(|cohort| div 2 + 1, ...) over a list prepended with the
// leader's own last index, which for an even-sized cohort biases the
// resulting N upward by one entry relative to a plain median — preserved
// literally rather than "corrected".
func (r *Raft) advanceLeaderCommit() {
	indices := make([]uint64, 0, len(r.cohort))
	indices = append(indices, r.lastIndex())
	for _, peer := range r.cohort {
		if peer == r.self {
			continue
		}
		indices = append(indices, r.matchIndex[peer])
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	n := indices[len(indices)/2]

	// I4: an entry only counts as committed once its term equals the
	// leader's current term.
	if n > r.commitIndex && r.termAt(n) == r.term {
		r.commitIndex = n
	}
}
