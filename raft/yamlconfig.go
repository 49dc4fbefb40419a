package raft

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/raftlab/raft/transport"
)

// FileConfig is the on-disk shape cmd/raftd loads: every Config tunable
// (spec §6.4) plus the cohort's addresses, expressed in the friendlier
// units a human editing YAML actually wants (milliseconds, not
// time.Duration's string form).
type FileConfig struct {
	Self    string            `yaml:"self"`
	Listen  string            `yaml:"listen"`
	Cohort  map[string]string `yaml:"cohort"` // server id -> grpc address
	Tuning  TuningConfig      `yaml:"tuning"`
}

type TuningConfig struct {
	BatchSize                      int `yaml:"batch_size"`
	ClientTimeoutMillis            int `yaml:"client_timeout_ms"`
	HeartbeatIntervalMillis        int `yaml:"heartbeat_interval_ms"`
	FollowerElectionTimeoutMinMs   int `yaml:"follower_election_timeout_min_ms"`
	FollowerElectionSpreadMs       int `yaml:"follower_election_timeout_spread_ms"`
	CandidateElectionTimeoutMinMs  int `yaml:"candidate_election_timeout_min_ms"`
	CandidateElectionSpreadMs      int `yaml:"candidate_election_timeout_spread_ms"`
}

// LoadFileConfig reads and parses a YAML config file at path.
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// CohortIDs returns the cohort's member IDs, self included, suitable for
// passing to NewRaft.
func (fc *FileConfig) CohortIDs() []transport.ServerID {
	ids := make([]transport.ServerID, 0, len(fc.Cohort))
	for id := range fc.Cohort {
		ids = append(ids, transport.ServerID(id))
	}
	return ids
}

// EngineConfig translates the file's tuning section into a raft.Config,
// filling in DefaultConfig()'s values for anything left at zero.
func (fc *FileConfig) EngineConfig() *Config {
	def := DefaultConfig()
	cfg := *def

	if fc.Tuning.BatchSize > 0 {
		cfg.BatchSize = fc.Tuning.BatchSize
	}
	if fc.Tuning.ClientTimeoutMillis > 0 {
		cfg.ClientTimeout = time.Duration(fc.Tuning.ClientTimeoutMillis) * time.Millisecond
	}
	if fc.Tuning.HeartbeatIntervalMillis > 0 {
		cfg.HeartbeatInterval = time.Duration(fc.Tuning.HeartbeatIntervalMillis) * time.Millisecond
	}
	if fc.Tuning.FollowerElectionTimeoutMinMs > 0 {
		cfg.FollowerElectionTimeoutMin = time.Duration(fc.Tuning.FollowerElectionTimeoutMinMs) * time.Millisecond
	}
	if fc.Tuning.FollowerElectionSpreadMs > 0 {
		cfg.FollowerElectionTimeoutSpread = time.Duration(fc.Tuning.FollowerElectionSpreadMs) * time.Millisecond
	}
	if fc.Tuning.CandidateElectionTimeoutMinMs > 0 {
		cfg.CandidateElectionTimeoutMin = time.Duration(fc.Tuning.CandidateElectionTimeoutMinMs) * time.Millisecond
	}
	if fc.Tuning.CandidateElectionSpreadMs > 0 {
		cfg.CandidateElectionTimeoutSpread = time.Duration(fc.Tuning.CandidateElectionSpreadMs) * time.Millisecond
	}
	return &cfg
}
