package raft

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/raftlab/raft/clock"
	"github.com/raftlab/raft/store"
	"github.com/raftlab/raft/transport"
)

// node bundles one engine with the scripted clock driving it, for tests
// that need to fire specific timeouts on specific servers.
type node struct {
	id     transport.ServerID
	engine *Raft
	clock  *clock.ScriptedClock
	store  *store.MemoryStore
	cancel context.CancelFunc
	done   chan error
}

// cluster wires a fixed-size cohort together with an in-memory transport
// hub and a scripted clock per node. Store and Clock interactions are
// synchronous and scripted; the in-memory transport delivers each Cast on
// its own goroutine, so tests wait for delivery with settle or eventually.
type cluster struct {
	hub   *transport.Hub
	nodes map[transport.ServerID]*node
}

func newCluster(ids ...transport.ServerID) *cluster {
	hub := transport.NewHub()
	cohort := append([]transport.ServerID(nil), ids...)

	c := &cluster{hub: hub, nodes: make(map[transport.ServerID]*node, len(ids))}
	for _, id := range ids {
		sc := clock.NewScriptedClock()
		ms := store.NewMemoryStore(store.NewStringAppendMachine())
		tp := hub.NewTransport(id)
		engine := NewRaft(id, cohort, ms, tp, sc, DefaultConfig(), zap.NewNop(), nil)
		hub.Register(id, engine.Deliver)

		c.nodes[id] = &node{id: id, engine: engine, clock: sc, store: ms}
	}
	return c
}

func (c *cluster) start() {
	for _, n := range c.nodes {
		ctx, cancel := context.WithCancel(context.Background())
		n.cancel = cancel
		n.done = make(chan error, 1)
		go func(n *node) { n.done <- n.engine.Run(ctx) }(n)
	}
}

func (c *cluster) stop() {
	for _, n := range c.nodes {
		n.cancel()
		<-n.done
	}
}

func (c *cluster) node(id transport.ServerID) *node {
	return c.nodes[id]
}

// leaders returns the set of nodes that currently believe they're leader.
func (c *cluster) leaders() []transport.ServerID {
	var out []transport.ServerID
	for id, n := range c.nodes {
		if n.engine.GetState().Role == Leader {
			out = append(out, id)
		}
	}
	return out
}

// settle gives scheduled goroutines (transport Casts, engine loop
// iterations) a chance to run. Tests use this after firing a scripted
// timeout or delivering a message directly; it never substitutes for the
// scripting itself.
func settle() {
	time.Sleep(20 * time.Millisecond)
}

// eventually polls until cond is true or the timeout elapses.
func eventually(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

// electLeader drives a full election by firing candidateID's follower
// timeout and letting every other node's grant flow through. It returns
// once candidateID sees itself as leader, or after 2s if it never does;
// it does not report which.
func electLeader(c *cluster, candidateID transport.ServerID) {
	c.node(candidateID).clock.FireFollowerTimeout()
	eventually(func() bool {
		return c.node(candidateID).engine.GetState().Role == Leader
	}, 2*time.Second)
}
