// Package clock provides the randomized state-timeout source the engine
// consumes. Arming a timer implicitly cancels whatever was previously armed
// (spec §5): the engine only listens on the channel its latest After* call
// returned.
package clock

import "time"

// Clock arms a single state-timeout at a time, per role. The caller is
// responsible for discarding the channel from the previous call.
// RealClock returns a fresh channel on every call; ScriptedClock returns the
// same channel per role every time, so a fire still buffered on it from an
// earlier arm of that role is not cancelled by re-arming.
type Clock interface {
	// AfterFollowerElection arms the follower election timeout
	// (150 + rand(150) ms for the real clock).
	AfterFollowerElection() <-chan time.Time

	// AfterCandidateElection arms the candidate election timeout
	// (15 + rand(15) ms for the real clock).
	AfterCandidateElection() <-chan time.Time

	// AfterHeartbeat arms the leader's fixed heartbeat interval (75ms for
	// the real clock).
	AfterHeartbeat() <-chan time.Time
}
