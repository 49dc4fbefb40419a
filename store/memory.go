package store

// StateMachine is the deterministic user-domain callback a MemoryStore
// applies committed values to. Given the same sequence of values on every
// replica, it must produce the same sequence of results (state-machine
// safety, P5).
type StateMachine interface {
	Apply(value []byte) []byte
}

// MemoryStore is a reference, in-process Store used by tests and by
// single-process demos. It keeps the log as a slice (index 1 at position 0)
// and is not safe for concurrent use, matching the engine's exclusive-owner
// contract: nothing but the owning engine's single goroutine ever touches
// it.
type MemoryStore struct {
	entries []Entry
	state   PersistentState
	machine StateMachine
}

// NewMemoryStore returns an empty store backed by machine.
func NewMemoryStore(machine StateMachine) *MemoryStore {
	return &MemoryStore{machine: machine}
}

func (m *MemoryStore) Last() (uint64, uint64) {
	if len(m.entries) == 0 {
		return 0, 0
	}
	return uint64(len(m.entries)), m.entries[len(m.entries)-1].Term
}

func (m *MemoryStore) Lookup(index uint64) (Entry, bool) {
	if index == 0 || index > uint64(len(m.entries)) {
		return Entry{}, false
	}
	return m.entries[index-1], true
}

func (m *MemoryStore) Range(fromIndex uint64, max int) []Entry {
	if fromIndex == 0 {
		fromIndex = 1
	}
	if fromIndex > uint64(len(m.entries)) {
		return nil
	}
	end := fromIndex - 1 + uint64(max)
	if end > uint64(len(m.entries)) {
		end = uint64(len(m.entries))
	}
	out := make([]Entry, end-(fromIndex-1))
	copy(out, m.entries[fromIndex-1:end])
	return out
}

func (m *MemoryStore) Append(entries []Entry) (uint64, error) {
	first := uint64(len(m.entries)) + 1
	m.entries = append(m.entries, entries...)
	return first, nil
}

func (m *MemoryStore) Truncate(keepUpToIndex uint64) error {
	if keepUpToIndex >= uint64(len(m.entries)) {
		return nil
	}
	m.entries = m.entries[:keepUpToIndex]
	return nil
}

func (m *MemoryStore) Apply(value []byte) ([]byte, error) {
	return m.machine.Apply(value), nil
}

func (m *MemoryStore) SaveState(state PersistentState) error {
	m.state = state
	return nil
}

func (m *MemoryStore) LoadState() (PersistentState, error) {
	return m.state, nil
}
