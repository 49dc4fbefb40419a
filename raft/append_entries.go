package raft

import (
	"go.uber.org/zap"

	"github.com/raftlab/raft/transport"
)

// logOk reports whether this server's log contains a matching entry at
// prevLogIndex/prevLogTerm, or prevLogIndex is 0 (spec glossary: LogOk).
func (r *Raft) logOk(prevLogIndex, prevLogTerm uint64) bool {
	if prevLogIndex == 0 {
		return true
	}
	return prevLogIndex <= r.lastIndex() && r.termAt(prevLogIndex) == prevLogTerm
}

// onAppendEntriesRequest implements spec §4.3's decision table. The
// universal precedence rule (dispatch.go) has already ensured
// req.Term <= r.term by the time this runs.
func (r *Raft) onAppendEntriesRequest(req *transport.AppendEntriesRequest) error {
	if req.Term < r.term {
		r.replyAppendEntries(req.Source, false, 0)
		r.metrics.incAppendEntries(false)
		return nil
	}

	if req.Term == r.term && r.role == Candidate {
		// Step down to follower; re-dispatch. Same-term step-down, so
		// votedFor is preserved (see role_entry.go's enterFollower doc).
		r.enterFollower(false)
	}

	if r.role != Follower {
		// A Leader observing a current-term AppendEntries from someone else
		// would violate I6 and can't happen from a correct peer; ignore
		// defensively rather than act on it (spec §7: never panic on
		// adversarial input).
		return nil
	}

	if !r.logOk(req.PrevLogIndex, req.PrevLogTerm) {
		r.replyAppendEntries(req.Source, false, 0)
		r.rearmFollowerTimer()
		r.metrics.incAppendEntries(false)
		return nil
	}

	if len(req.Entries) == 0 {
		r.advanceFollowerCommit(req.CommitIndex)
		if err := r.applyCommitted(); err != nil {
			return err
		}
		r.replyAppendEntries(req.Source, true, req.PrevLogIndex)
		r.rearmFollowerTimer()
		r.metrics.incAppendEntries(true)
		return nil
	}

	if r.lastIndex() >= req.PrevLogIndex+1 {
		if r.termAt(req.PrevLogIndex+1) == req.Entries[0].Term {
			// First entry already matches: nothing to append, just reply.
			matchIndex := req.PrevLogIndex + uint64(len(req.Entries))
			r.advanceFollowerCommit(req.CommitIndex)
			if err := r.applyCommitted(); err != nil {
				return err
			}
			r.replyAppendEntries(req.Source, true, matchIndex)
			r.rearmFollowerTimer()
			r.metrics.incAppendEntries(true)
			return nil
		}

		// Conflict at prevLogIndex+1: truncate and re-dispatch. Per spec
		// §9's flagged design note, the source truncates to lastIndex-1
		// (one entry more than prevLogIndex strictly requires) rather than
		// to prevLogIndex; preserved literally here.
		if err := r.truncateLog(r.lastIndex() - 1); err != nil {
			return err
		}
		return r.onAppendEntriesRequest(req)
	}

	if r.lastIndex() == req.PrevLogIndex {
		if _, err := r.appendLog(req.Entries); err != nil {
			return err
		}
		return r.onAppendEntriesRequest(req)
	}

	// logOk guarantees lastIndex() >= prevLogIndex (or prevLogIndex == 0,
	// covered by the branch above), so this is unreachable.
	return nil
}

// advanceFollowerCommit sets commitIndex <- min(leaderCommit, last().index),
// only ever moving it forward (commitIndex monotonicity holds even if an
// equal or smaller leader commitIndex arrives later, spec §5).
func (r *Raft) advanceFollowerCommit(leaderCommit uint64) {
	newCommit := minUint64(leaderCommit, r.lastIndex())
	if newCommit > r.commitIndex {
		r.commitIndex = newCommit
	}
}

func (r *Raft) replyAppendEntries(to transport.ServerID, success bool, matchIndex uint64) {
	r.transport.Cast(to, &transport.AppendEntriesResponse{
		Term:       r.term,
		Source:     r.self,
		Success:    success,
		MatchIndex: matchIndex,
	})
}

// onAppendEntriesResponse implements spec §4.5's response handling. The
// precedence rule has already stepped this server down to Follower if
// resp.Term was greater, so only a same-term response reaches here while
// still Leader.
func (r *Raft) onAppendEntriesResponse(resp *transport.AppendEntriesResponse) error {
	if r.role != Leader || resp.Term != r.term {
		return nil
	}

	if resp.Success {
		if resp.MatchIndex > r.matchIndex[resp.Source] {
			r.matchIndex[resp.Source] = resp.MatchIndex
		}
		if resp.MatchIndex+1 > r.nextIndex[resp.Source] {
			r.nextIndex[resp.Source] = resp.MatchIndex + 1
		}
		return nil
	}

	next := r.nextIndex[resp.Source]
	if next > 1 {
		next--
	} else {
		next = 1
	}
	r.nextIndex[resp.Source] = next
	r.logger.Debug("append entries rejected, backing off",
		zap.String("peer", string(resp.Source)), zap.Uint64("nextIndex", next))
	return nil
}
