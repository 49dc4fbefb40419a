// Package raft implements the consensus engine: role transitions, election,
// log matching, commitment, and persistence coordination for a fixed
// cohort agreeing on an ordered command log. Everything I/O-bound (the
// durable log, the network, wall-clock time) is an external collaborator
// reached through the store, transport, and clock interfaces; this package
// is the single-threaded state machine that drives them.
package raft

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/raftlab/raft/clock"
	"github.com/raftlab/raft/store"
	"github.com/raftlab/raft/transport"
)

// clientCallEvent is a client call event (spec §4.1's four event kinds):
// a value to append, and the channel its eventual result is delivered on.
type clientCallEvent struct {
	value []byte
	reply chan callResult
}

// Raft is a single cohort member's consensus engine. All of its state is
// owned by the single goroutine running Run; Deliver and Submit only ever
// hand events to that goroutine over channels.
type Raft struct {
	*raftState

	self   transport.ServerID
	cohort []transport.ServerID

	store     store.Store
	transport transport.Transport
	clock     clock.Clock
	config    *Config
	logger    *zap.Logger
	metrics   *metrics

	rpcCh     chan interface{}
	commandCh chan clientCallEvent
	timerCh   <-chan time.Time

	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once

	statusMu sync.RWMutex
	status   Status
}

// NewRaft constructs a Raft engine in the Follower role. cohort must include
// self. Call Run to start it. reg may be nil, in which case no metrics are
// exported.
func NewRaft(
	self transport.ServerID,
	cohort []transport.ServerID,
	st store.Store,
	tp transport.Transport,
	cl clock.Clock,
	cfg *Config,
	logger *zap.Logger,
	reg prometheus.Registerer,
) *Raft {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Raft{
		raftState: &raftState{
			role:         Follower,
			votesGranted: make(map[transport.ServerID]bool),
		},
		self:      self,
		cohort:    cohort,
		store:     st,
		transport: tp,
		clock:     cl,
		config:    cfg,
		logger:    logger.With(zap.String("id", string(self))),
		metrics:   newMetrics(string(self), reg),
		rpcCh:     make(chan interface{}, 256),
		commandCh: make(chan clientCallEvent),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	return r
}

// Deliver hands an inbound peer message to the engine. It is how a
// Transport implementation feeds messages back in; it must not be called
// from the engine's own goroutine. Deliver itself never blocks the caller
// for long: it only waits for the engine to have room in its queue or to
// have stopped.
func (r *Raft) Deliver(msg interface{}) {
	select {
	case r.rpcCh <- msg:
	case <-r.stopCh:
	case <-r.doneCh:
	}
}

// Submit is the client API (spec §6.3's call): it appends value through the
// leader and blocks until the entry has been applied, the leader is
// deposed, this server turns out not to be the leader, or ctx expires.
func (r *Raft) Submit(ctx context.Context, value []byte) ([]byte, error) {
	reply := make(chan callResult, 1)
	select {
	case r.commandCh <- clientCallEvent{value: value, reply: reply}:
	case <-ctx.Done():
		return nil, ErrTimeout
	case <-r.doneCh:
		return nil, ErrStopped
	}

	select {
	case res := <-reply:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ErrTimeout
	case <-r.doneCh:
		return nil, ErrStopped
	}
}

// GetState returns a point-in-time snapshot of role/term/commit progress.
func (r *Raft) GetState() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}

// Stop gracefully shuts the engine down: every pending Submit still waiting
// on apply is resolved with ErrDeposed, and Run returns.
func (r *Raft) Stop() {
	r.once.Do(func() { close(r.stopCh) })
	<-r.doneCh
}

// Run loads persisted state, enters Follower, and then dispatches events —
// peer messages, client calls, and timer expiries — one at a time until ctx
// is cancelled, Stop is called, or a Store operation fails (StoreFailure,
// which is always fatal).
func (r *Raft) Run(ctx context.Context) error {
	defer close(r.doneCh)

	persisted, err := r.store.LoadState()
	if err != nil {
		return storeErr("LoadState", err)
	}
	r.term = persisted.Term
	r.votedFor = transport.ServerID(persisted.VotedFor)

	r.enterFollower(false)
	r.publishStatus()

	for {
		select {
		case <-ctx.Done():
			r.depose()
			return nil
		case <-r.stopCh:
			r.depose()
			return nil
		case msg := <-r.rpcCh:
			if err := r.handleMessage(msg); err != nil {
				r.depose()
				return err
			}
		case evt := <-r.commandCh:
			if err := r.handleClientCall(evt); err != nil {
				r.depose()
				return err
			}
		case t := <-r.timerCh:
			if err := r.handleTimerExpiry(t); err != nil {
				r.depose()
				return err
			}
		}
		r.publishStatus()
	}
}

func (r *Raft) publishStatus() {
	r.statusMu.Lock()
	r.status = Status{
		Role:        r.role,
		Term:        r.term,
		VotedFor:    r.votedFor,
		CommitIndex: r.commitIndex,
		LastApplied: r.lastApplied,
	}
	r.statusMu.Unlock()

	r.metrics.observeRole(r.role)
	r.metrics.observeTerm(r.term)
	r.metrics.observeCommitIndex(r.commitIndex)
	r.metrics.observeLastApplied(r.lastApplied)
}

// persist is the funnel every handler's persistent-field mutation passes
// through before an action depending on it becomes observable outside the
// engine (spec §4.1's persist barrier, §9's "single function").
func (r *Raft) persist() error {
	return storeErr("SaveState", r.store.SaveState(store.PersistentState{
		Term:     r.term,
		VotedFor: string(r.votedFor),
	}))
}

func quorum(cohortSize int) int {
	return cohortSize/2 + 1
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
