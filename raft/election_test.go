package raft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raftlab/raft/transport"
)

// Spec §8 scenario 1: normal election.
func TestNormalElection(t *testing.T) {
	c := newCluster("A", "B", "C")
	c.start()
	defer c.stop()

	electLeader(c, "A")

	require.Equal(t, []transport.ServerID{"A"}, c.leaders())

	require.True(t, eventually(func() bool {
		return c.node("B").engine.GetState().VotedFor == "A" &&
			c.node("C").engine.GetState().VotedFor == "A"
	}, time.Second))

	st := c.node("A").engine.GetState()
	require.Equal(t, transport.ServerID("A"), st.VotedFor)
	require.Equal(t, Leader, st.Role)
}

// P1: at most one server observes itself as leader for any given term,
// even when two followers race to start an election simultaneously.
func TestElectionSafetyUnderSplitVote(t *testing.T) {
	c := newCluster("A", "B", "C", "D", "E")
	c.start()
	defer c.stop()

	// A and B both time out as followers in the same instant; only one can
	// win a 5-node cohort's majority (3) given each already voted for
	// itself.
	c.node("A").clock.FireFollowerTimeout()
	c.node("B").clock.FireFollowerTimeout()
	settle()

	require.True(t, eventually(func() bool { return len(c.leaders()) >= 1 }, 2*time.Second))

	leadersByTerm := map[uint64][]transport.ServerID{}
	for id, n := range c.nodes {
		st := n.engine.GetState()
		if st.Role == Leader {
			leadersByTerm[st.Term] = append(leadersByTerm[st.Term], id)
		}
	}
	for term, leaders := range leadersByTerm {
		require.Lenf(t, leaders, 1, "term %d had %d leaders: %v", term, len(leaders), leaders)
	}
}

// Spec §8 scenario 5: a vote response carrying an earlier term must be
// ignored.
func TestStaleVoteResponseIsIgnored(t *testing.T) {
	c := newCluster("A", "B", "C")
	c.start()
	defer c.stop()

	electLeader(c, "A")
	before := c.node("A").engine.GetState()

	c.node("A").engine.Deliver(&transport.RequestVoteResponse{Term: before.Term - 1, Source: "B", VoteGranted: true})
	settle()

	after := c.node("A").engine.GetState()
	require.Equal(t, before, after)
}

func TestSingleNodeCohortIsImmediatelyLeader(t *testing.T) {
	c := newCluster("A")
	c.start()
	defer c.stop()

	c.node("A").clock.FireFollowerTimeout()
	require.True(t, eventually(func() bool {
		return c.node("A").engine.GetState().Role == Leader
	}, time.Second))
}
