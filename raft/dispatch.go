package raft

import (
	"go.uber.org/zap"

	"github.com/raftlab/raft/transport"
)

// handleMessage implements the universal precedence rule (spec §4.1) ahead
// of role-specific handling, then dispatches by concrete message type.
//
// "Re-dispatch the same message under the new state" is realized here by
// simply falling through to the type switch after stepping down — no
// recursion or requeue needed, since nothing else can interleave within one
// call to handleMessage.
func (r *Raft) handleMessage(msg interface{}) error {
	if term := messageTerm(msg); term > r.term {
		r.logger.Info("stepping down: higher term observed",
			zap.Uint64("observedTerm", term), zap.Uint64("previousTerm", r.term))
		r.term = term
		r.enterFollower(true)
		if err := r.persist(); err != nil {
			return err
		}
	}

	switch m := msg.(type) {
	case *transport.AppendEntriesRequest:
		return r.onAppendEntriesRequest(m)
	case *transport.AppendEntriesResponse:
		return r.onAppendEntriesResponse(m)
	case *transport.RequestVoteRequest:
		return r.onRequestVoteRequest(m)
	case *transport.RequestVoteResponse:
		return r.onRequestVoteResponse(m)
	default:
		return errUnknownEvent(msg)
	}
}

func messageTerm(msg interface{}) uint64 {
	switch m := msg.(type) {
	case *transport.AppendEntriesRequest:
		return m.Term
	case *transport.AppendEntriesResponse:
		return m.Term
	case *transport.RequestVoteRequest:
		return m.Term
	case *transport.RequestVoteResponse:
		return m.Term
	default:
		return 0
	}
}

func (r *Raft) handleTimerExpiry(_ interface{}) error {
	switch r.role {
	case Follower:
		r.logger.Info("follower election timeout, becoming candidate")
		return r.enterCandidate()
	case Candidate:
		r.logger.Info("candidate election timeout, restarting election")
		return r.enterCandidate()
	case Leader:
		return r.heartbeatTick()
	}
	return nil
}
