package raft

import "github.com/raftlab/raft/store"

func (r *Raft) lastIndex() uint64 {
	idx, _ := r.store.Last()
	return idx
}

func (r *Raft) lastLogTerm() uint64 {
	_, term := r.store.Last()
	return term
}

// termAt returns the term of the entry at index, or 0 for index 0 (spec's
// "no entry" sentinel) or any index that doesn't (yet, or any longer)
// exist.
func (r *Raft) termAt(index uint64) uint64 {
	if index == 0 {
		return 0
	}
	e, ok := r.store.Lookup(index)
	if !ok {
		return 0
	}
	return e.Term
}

func (r *Raft) appendLog(entries []store.Entry) (uint64, error) {
	first, err := r.store.Append(entries)
	return first, storeErr("Append", err)
}

func (r *Raft) truncateLog(keepUpToIndex uint64) error {
	return storeErr("Truncate", r.store.Truncate(keepUpToIndex))
}
