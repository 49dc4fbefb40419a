package raft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Spec §8 scenario 3: the leader is partitioned away from the cohort; the
// remaining majority elects a new leader in a higher term. When the
// partition heals, the stale leader observes the higher term and steps
// down (I6: at most one leader per term, never two leaders across terms
// behaving as leader simultaneously once the precedence rule has run).
func TestLeaderFailoverAcrossPartition(t *testing.T) {
	c := newCluster("A", "B", "C")
	c.start()
	defer c.stop()

	electLeader(c, "A")
	staleTerm := c.node("A").engine.GetState().Term

	c.hub.SetPartitioned("A", true)

	c.node("B").clock.FireFollowerTimeout()
	require.True(t, eventually(func() bool {
		st := c.node("B").engine.GetState()
		return st.Role == Leader && st.Term > staleTerm
	}, 2*time.Second))

	require.Equal(t, Leader, c.node("A").engine.GetState().Role, "A hasn't learned about the partition yet")

	c.hub.SetPartitioned("A", false)

	// Once healed, the next heartbeat B sends (or A's own timeout firing
	// against an absent leader) carries the higher term and deposes A.
	c.node("B").clock.FireHeartbeat()
	require.True(t, eventually(func() bool {
		return c.node("A").engine.GetState().Role == Follower
	}, 2*time.Second))

	require.Equal(t, 1, len(c.leaders()))
	require.Equal(t, c.node("B").engine.GetState().Term, c.node("A").engine.GetState().Term)
}
