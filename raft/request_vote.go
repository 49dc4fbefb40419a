package raft

import (
	"go.uber.org/zap"

	"github.com/raftlab/raft/transport"
)

// onRequestVoteRequest implements spec §4.4's grant criteria. The
// precedence rule has already ensured req.Term <= r.term.
func (r *Raft) onRequestVoteRequest(req *transport.RequestVoteRequest) error {
	if req.Term < r.term {
		r.replyVote(req.Source, false)
		return nil
	}

	lastIndex, lastTerm := r.lastIndex(), r.lastLogTerm()
	upToDate := req.LastLogTerm > lastTerm ||
		(req.LastLogTerm == lastTerm && req.LastLogIndex >= lastIndex)
	canVote := r.votedFor == "" || r.votedFor == req.Source

	if !upToDate || !canVote {
		r.logger.Info("denying vote",
			zap.String("candidate", string(req.Source)),
			zap.Bool("upToDate", upToDate), zap.Bool("canVote", canVote))
		r.replyVote(req.Source, false)
		return nil
	}

	r.votedFor = req.Source
	if err := r.persist(); err != nil {
		return err
	}
	r.replyVote(req.Source, true)
	if r.role == Follower {
		r.rearmFollowerTimer()
	}
	r.logger.Info("vote granted", zap.String("candidate", string(req.Source)))
	return nil
}

func (r *Raft) replyVote(to transport.ServerID, granted bool) {
	r.transport.Cast(to, &transport.RequestVoteResponse{
		Term:        r.term,
		Source:      r.self,
		VoteGranted: granted,
	})
}

// onRequestVoteResponse implements spec §4.4's vote counting. A response
// carrying a term different from the current one is stale (spec §8
// scenario 5: "In term 3, A receives RequestVoteResponse{term=1, ...};
// ignored") — the precedence rule only steps down on a *greater* term, so a
// lesser one reaches here and must still be discarded rather than acted on.
func (r *Raft) onRequestVoteResponse(resp *transport.RequestVoteResponse) error {
	if r.role != Candidate || resp.Term != r.term || !resp.VoteGranted {
		return nil
	}

	r.votesGranted[resp.Source] = true
	r.metrics.incVotesGranted()
	if len(r.votesGranted) >= quorum(len(r.cohort)) {
		r.logger.Info("election won", zap.Int("votes", len(r.votesGranted)), zap.Uint64("term", r.term))
		r.enterLeader()
	}
	return nil
}

// startElection is spec §4.4's "Starting an election": bump term, vote for
// self, persist, then broadcast RequestVote to every other cohort member.
func (r *Raft) startElection() error {
	r.term++
	r.votedFor = r.self
	r.votesGranted = map[transport.ServerID]bool{r.self: true}
	if err := r.persist(); err != nil {
		return err
	}

	lastIndex, lastTerm := r.lastIndex(), r.lastLogTerm()
	r.logger.Info("starting election", zap.Uint64("term", r.term))
	for _, peer := range r.cohort {
		if peer == r.self {
			continue
		}
		r.transport.Cast(peer, &transport.RequestVoteRequest{
			Term:         r.term,
			Source:       r.self,
			LastLogIndex: lastIndex,
			LastLogTerm:  lastTerm,
		})
	}
	return nil
}
