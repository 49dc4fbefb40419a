package raft

import "github.com/prometheus/client_golang/prometheus"

// metrics is nil-tolerant: every method is a no-op on a nil receiver, so
// engines constructed without a prometheus.Registerer (most tests) pay
// nothing for it.
type metrics struct {
	term                  prometheus.Gauge
	commitIndex           prometheus.Gauge
	lastApplied           prometheus.Gauge
	role                  *prometheus.GaugeVec
	votesGranted          prometheus.Counter
	appendEntriesAccepted prometheus.Counter
	appendEntriesRejected prometheus.Counter
}

func newMetrics(id string, reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		term: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "raft", Name: "term", ConstLabels: prometheus.Labels{"id": id},
			Help: "current term",
		}),
		commitIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "raft", Name: "commit_index", ConstLabels: prometheus.Labels{"id": id},
			Help: "highest log index known committed",
		}),
		lastApplied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "raft", Name: "last_applied", ConstLabels: prometheus.Labels{"id": id},
			Help: "highest log index applied to the state machine",
		}),
		role: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "raft", Name: "role", ConstLabels: prometheus.Labels{"id": id},
			Help: "1 for the role this server currently holds, 0 otherwise",
		}, []string{"role"}),
		votesGranted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raft", Name: "votes_granted_total", ConstLabels: prometheus.Labels{"id": id},
			Help: "votes granted to candidates",
		}),
		appendEntriesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raft", Name: "append_entries_accepted_total", ConstLabels: prometheus.Labels{"id": id},
			Help: "AppendEntries requests replied to with success=true",
		}),
		appendEntriesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "raft", Name: "append_entries_rejected_total", ConstLabels: prometheus.Labels{"id": id},
			Help: "AppendEntries requests replied to with success=false",
		}),
	}

	reg.MustRegister(m.term, m.commitIndex, m.lastApplied, m.role, m.votesGranted,
		m.appendEntriesAccepted, m.appendEntriesRejected)
	return m
}

func (m *metrics) observeRole(r Role) {
	if m == nil {
		return
	}
	for _, candidate := range []Role{Follower, Candidate, Leader} {
		v := 0.0
		if candidate == r {
			v = 1.0
		}
		m.role.WithLabelValues(candidate.String()).Set(v)
	}
}

func (m *metrics) observeTerm(term uint64) {
	if m == nil {
		return
	}
	m.term.Set(float64(term))
}

func (m *metrics) observeCommitIndex(idx uint64) {
	if m == nil {
		return
	}
	m.commitIndex.Set(float64(idx))
}

func (m *metrics) observeLastApplied(idx uint64) {
	if m == nil {
		return
	}
	m.lastApplied.Set(float64(idx))
}

func (m *metrics) incVotesGranted() {
	if m == nil {
		return
	}
	m.votesGranted.Inc()
}

func (m *metrics) incAppendEntries(success bool) {
	if m == nil {
		return
	}
	if success {
		m.appendEntriesAccepted.Inc()
	} else {
		m.appendEntriesRejected.Inc()
	}
}
