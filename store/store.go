// Package store defines the durable-log contract the consensus engine relies
// on. The engine treats every method here as a synchronous suspension point;
// implementations own the log, the persisted term/votedFor pair, and the
// user state machine.
package store

import "errors"

// ErrUpdatesOutOfOrder is the rejection DocumentStateMachine.Apply reports,
// as the Error text of its JSON-encoded result, when a value carries a
// sequence number that is not strictly newer than the last one applied for
// the same key. It is a state-machine-level rejection, not a
// store I/O failure: the engine still advances lastApplied and still
// delivers the (rejection) result to the waiting client.
var ErrUpdatesOutOfOrder = errors.New("store: update sequence is out of order")

// ErrNotFound names the "no entry at index" condition. Lookup itself reports
// that condition as ok=false and does not return this error.
var ErrNotFound = errors.New("store: no entry at index")

// Entry is a single log record. Indices are 1-based and assigned implicitly
// by position; index 0 denotes "no entry".
type Entry struct {
	Term  uint64
	Value []byte
}

// PersistentState is the snapshot of fields that must survive restart.
type PersistentState struct {
	Term     uint64
	VotedFor string
}

// Store is the durable log, persisted metadata, and user state machine
// combined. A Store is owned exclusively by a single engine; concurrent
// access from outside that engine is undefined.
type Store interface {
	// Last returns the index and term of the last log entry, or (0, 0) if
	// the log is empty.
	Last() (index, term uint64)

	// Lookup returns the entry at index, or ok=false if none exists there.
	Lookup(index uint64) (entry Entry, ok bool)

	// Range returns up to max entries starting at fromIndex, in order. The
	// returned slice may be shorter than max if the log doesn't extend that
	// far.
	Range(fromIndex uint64, max int) []Entry

	// Append appends entries contiguously after Last().index and returns the
	// index assigned to the first of them.
	Append(entries []Entry) (firstIndex uint64, err error)

	// Truncate discards every entry with index > keepUpToIndex. Idempotent.
	Truncate(keepUpToIndex uint64) error

	// Apply hands value to the user state machine and returns its
	// deterministic output. err is reserved for durability/I-O failures of
	// the apply bookkeeping itself, never for a business-level rejection
	// encoded in result.
	Apply(value []byte) (result []byte, err error)

	// SaveState durably persists term/votedFor before returning.
	SaveState(state PersistentState) error

	// LoadState returns the persisted term/votedFor pair, or the zero value
	// if none was ever saved.
	LoadState() (PersistentState, error)
}
