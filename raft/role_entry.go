package raft

import (
	"go.uber.org/zap"

	"github.com/raftlab/raft/transport"
)

// enterFollower is spec §4.2's "Enter follower": clear votesGranted,
// nextIndex, matchIndex; fail every pending client reply with ErrDeposed;
// arm the follower election timer. Whether votedFor is also cleared is an
// Open Question the spec leaves ambiguous (see DESIGN.md): this
// implementation only clears it when clearVote is true, i.e. when the
// universal precedence rule (§4.1) is firing because the term actually
// advanced. A same-term step-down (a candidate accepting a same-term
// leader, §4.3) must NOT clear votedFor, or a second RequestVote in that
// term could be granted to a different candidate than the one this server
// already backed, violating I2.
func (r *Raft) enterFollower(clearVote bool) {
	r.role = Follower
	if clearVote {
		r.votedFor = ""
	}
	r.votesGranted = nil
	r.nextIndex = nil
	r.matchIndex = nil
	r.depose()
	r.timerCh = r.clock.AfterFollowerElection()

	r.logger.Info("entering follower", zap.Uint64("term", r.term))
}

// enterCandidate is spec §4.2's "Enter candidate": begin a new election and
// arm the candidate election timer. Also reached on a candidate's own
// election timeout, which spec §4.4 describes as simply starting a new
// election without detouring through Follower first.
func (r *Raft) enterCandidate() error {
	r.role = Candidate
	if err := r.startElection(); err != nil {
		return err
	}
	if len(r.votesGranted) >= quorum(len(r.cohort)) {
		// Single-member (or otherwise already-quorum) cohort: self-vote
		// alone wins, with no response round trip to wait for.
		r.enterLeader()
		return nil
	}
	r.timerCh = r.clock.AfterCandidateElection()
	return nil
}

// enterLeader is spec §4.2's "Enter leader": initialize nextIndex/matchIndex
// for every peer and arm the heartbeat timer. No no-op entry is appended —
// commit progress for prior-term entries must wait for an entry appended in
// the current term (I4).
func (r *Raft) enterLeader() {
	r.role = Leader
	last := r.lastIndex()

	r.nextIndex = make(map[transport.ServerID]uint64, len(r.cohort))
	r.matchIndex = make(map[transport.ServerID]uint64, len(r.cohort))
	for _, peer := range r.cohort {
		if peer == r.self {
			continue
		}
		r.nextIndex[peer] = last + 1
		r.matchIndex[peer] = 0
	}
	r.froms = make(map[uint64]chan callResult)
	r.timerCh = r.clock.AfterHeartbeat()

	r.logger.Info("entering leader", zap.Uint64("term", r.term))
}

// depose resolves every pending client reply with ErrDeposed and clears
// froms. A no-op if this server isn't (or wasn't) the leader.
func (r *Raft) depose() {
	for idx, reply := range r.froms {
		reply <- callResult{Err: ErrDeposed}
		delete(r.froms, idx)
	}
	r.froms = nil
}

func (r *Raft) rearmFollowerTimer() {
	r.timerCh = r.clock.AfterFollowerElection()
}
