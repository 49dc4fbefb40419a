package raft

import "github.com/raftlab/raft/store"

// handleClientCall implements spec §4.6. A non-leader rejects immediately;
// a leader appends the value under its current term and parks the reply
// handle until the entry is applied (apply.go) or this server is deposed
// (role_entry.go's depose).
func (r *Raft) handleClientCall(evt clientCallEvent) error {
	if r.role != Leader {
		evt.reply <- callResult{Err: ErrNotLeader}
		return nil
	}

	entry := store.Entry{Term: r.term, Value: evt.value}
	firstIndex, err := r.appendLog([]store.Entry{entry})
	if err != nil {
		return err
	}

	r.froms[firstIndex] = evt.reply
	return nil
}
