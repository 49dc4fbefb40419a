package raft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/raftlab/raft/transport"
)

// Spec §8 scenario 2: a single client entry is replicated, committed on the
// leader once a majority acknowledges it, and then on the followers once
// they learn the new commitIndex.
func TestSingleEntryReplication(t *testing.T) {
	c := newCluster("A", "B", "C")
	c.start()
	defer c.stop()

	electLeader(c, "A")

	type submitResult struct {
		value []byte
		err   error
	}
	resultCh := make(chan submitResult, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		v, err := c.node("A").engine.Submit(ctx, []byte("x"))
		resultCh <- submitResult{v, err}
	}()

	// Give Submit a moment to land in the leader's commandCh and append the
	// entry before any heartbeat fires.
	require.True(t, eventually(func() bool {
		idx, _ := c.node("A").store.Last()
		return idx >= 1
	}, time.Second))

	var result submitResult
	received := false
	for i := 0; i < 10 && !received; i++ {
		c.node("A").clock.FireHeartbeat()
		select {
		case result = <-resultCh:
			received = true
		case <-time.After(50 * time.Millisecond):
		}
	}
	require.True(t, received, "submit never resolved")
	require.NoError(t, result.err)
	require.Equal(t, []byte("x"), result.value)

	// The leader advanced commitIndex after that round's AppendEntries went
	// out; the next heartbeat carries it to the followers.
	c.node("A").clock.FireHeartbeat()
	require.True(t, eventually(func() bool {
		return c.node("B").engine.GetState().CommitIndex == 1 &&
			c.node("C").engine.GetState().CommitIndex == 1
	}, time.Second), "followers never learned the new commit index")

	// Followers apply in the same event that advances their commitIndex.
	// Drive a few more heartbeats, then check lastApplied matches on every
	// replica (P5: same sequence of commands yields the same apply progress
	// everywhere).
	for i := 0; i < 3; i++ {
		c.node("A").clock.FireHeartbeat()
		settle()
	}
	require.True(t, eventually(func() bool {
		return c.node("B").engine.GetState().LastApplied == 1 &&
			c.node("C").engine.GetState().LastApplied == 1
	}, time.Second))
}

func TestSubmitRejectedByNonLeader(t *testing.T) {
	c := newCluster("A", "B", "C")
	c.start()
	defer c.stop()

	electLeader(c, "A")

	follower := transport.ServerID("B")
	if c.node(follower).engine.GetState().Role == Leader {
		follower = "C"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := c.node(follower).engine.Submit(ctx, []byte("x"))
	require.ErrorIs(t, err, ErrNotLeader)
}
