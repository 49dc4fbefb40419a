package clock

import (
	"math/rand"
	"time"
)

// RealClock arms genuine, randomized wall-clock timers, seeded per instance
// as spec §9 recommends (deterministic tests swap in a ScriptedClock
// instead).
type RealClock struct {
	rnd *rand.Rand

	followerBase, followerSpread   time.Duration
	candidateBase, candidateSpread time.Duration
	heartbeat                      time.Duration
}

var _ Clock = (*RealClock)(nil)

// NewRealClock returns a clock using the durations named in spec §6.4:
// follower election 150-300ms, candidate election 15-30ms, heartbeat 75ms.
func NewRealClock(seed int64) *RealClock {
	return &RealClock{
		rnd:             rand.New(rand.NewSource(seed)),
		followerBase:    150 * time.Millisecond,
		followerSpread:  150 * time.Millisecond,
		candidateBase:   15 * time.Millisecond,
		candidateSpread: 15 * time.Millisecond,
		heartbeat:       75 * time.Millisecond,
	}
}

func (c *RealClock) randomized(base, spread time.Duration) <-chan time.Time {
	d := base
	if spread > 0 {
		d += time.Duration(c.rnd.Int63n(int64(spread)))
	}
	return time.After(d)
}

func (c *RealClock) AfterFollowerElection() <-chan time.Time {
	return c.randomized(c.followerBase, c.followerSpread)
}

func (c *RealClock) AfterCandidateElection() <-chan time.Time {
	return c.randomized(c.candidateBase, c.candidateSpread)
}

func (c *RealClock) AfterHeartbeat() <-chan time.Time {
	return time.After(c.heartbeat)
}
