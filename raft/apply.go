package raft

// applyCommitted implements spec §4.7's apply loop: hand every entry between
// lastApplied and commitIndex to the state machine, in order, resolving any
// matching pending client reply. Apply is synchronous with whatever event
// advanced commitIndex — the user state machine must be deterministic over
// the log for P5 (state-machine safety) to hold across replicas.
func (r *Raft) applyCommitted() error {
	for r.lastApplied < r.commitIndex {
		idx := r.lastApplied + 1

		entry, ok := r.store.Lookup(idx)
		if !ok {
			return storeErr("Lookup", errMissingEntry(idx))
		}

		result, err := r.store.Apply(entry.Value)
		if err != nil {
			return storeErr("Apply", err)
		}

		if reply, pending := r.froms[idx]; pending {
			reply <- callResult{Value: result}
			delete(r.froms, idx)
		}

		r.lastApplied = idx
	}
	return nil
}
