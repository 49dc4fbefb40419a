package raft

import "time"

// Config carries every tunable spec §6.4 names. Cohort membership is not
// part of it; it is passed to NewRaft separately. The engine reads only
// BatchSize: the heartbeat and election durations here are not consulted
// by the engine or by clock.RealClock, which uses its own fixed values, so
// timing comes entirely from the Clock passed to NewRaft. The zero value is
// not usable; call DefaultConfig and override selectively.
type Config struct {
	// BatchSize caps how many log entries a single AppendEntries carries.
	BatchSize int

	// ClientTimeout bounds how long a caller's Submit blocks waiting for a
	// submitted command to be applied. Enforced by the caller (via ctx), not
	// by the engine itself — the engine has no notion of client-side time.
	ClientTimeout time.Duration

	HeartbeatInterval time.Duration

	FollowerElectionTimeoutMin    time.Duration
	FollowerElectionTimeoutSpread time.Duration

	CandidateElectionTimeoutMin    time.Duration
	CandidateElectionTimeoutSpread time.Duration
}

// DefaultConfig returns the configuration named literally in spec §6.4.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:                      10,
		ClientTimeout:                  5000 * time.Millisecond,
		HeartbeatInterval:              75 * time.Millisecond,
		FollowerElectionTimeoutMin:     150 * time.Millisecond,
		FollowerElectionTimeoutSpread:  150 * time.Millisecond,
		CandidateElectionTimeoutMin:    15 * time.Millisecond,
		CandidateElectionTimeoutSpread: 15 * time.Millisecond,
	}
}
