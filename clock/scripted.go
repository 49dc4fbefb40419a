package clock

import "time"

// ScriptedClock replaces wall-clock timers with channels a test drives by
// hand, per spec §9 ("deterministic tests replace the timer source with a
// scripted one"). Each role has one buffered channel; arming just returns
// it, so a test fires a timeout by sending on the matching Fire* method.
type ScriptedClock struct {
	followerCh  chan time.Time
	candidateCh chan time.Time
	heartbeatCh chan time.Time
}

var _ Clock = (*ScriptedClock)(nil)

func NewScriptedClock() *ScriptedClock {
	return &ScriptedClock{
		followerCh:  make(chan time.Time, 1),
		candidateCh: make(chan time.Time, 1),
		heartbeatCh: make(chan time.Time, 1),
	}
}

func (c *ScriptedClock) AfterFollowerElection() <-chan time.Time  { return c.followerCh }
func (c *ScriptedClock) AfterCandidateElection() <-chan time.Time { return c.candidateCh }
func (c *ScriptedClock) AfterHeartbeat() <-chan time.Time         { return c.heartbeatCh }

// FireFollowerTimeout signals a follower election timeout.
func (c *ScriptedClock) FireFollowerTimeout() { c.followerCh <- time.Now() }

// FireCandidateTimeout signals a candidate election timeout.
func (c *ScriptedClock) FireCandidateTimeout() { c.candidateCh <- time.Now() }

// FireHeartbeat signals a leader heartbeat tick.
func (c *ScriptedClock) FireHeartbeat() { c.heartbeatCh <- time.Now() }
