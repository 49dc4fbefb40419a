package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndLast(t *testing.T) {
	s := NewMemoryStore(NewStringAppendMachine())

	idx, term := s.Last()
	require.Equal(t, uint64(0), idx)
	require.Equal(t, uint64(0), term)

	first, err := s.Append([]Entry{{Term: 1, Value: []byte("x")}})
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	idx, term = s.Last()
	require.Equal(t, uint64(1), idx)
	require.Equal(t, uint64(1), term)
}

func TestMemoryStoreAppendEmptyNeverChangesLast(t *testing.T) {
	// R2: appending [] never changes last().
	s := NewMemoryStore(NewStringAppendMachine())
	_, _ = s.Append([]Entry{{Term: 1, Value: []byte("x")}})

	before, beforeTerm := s.Last()
	_, err := s.Append(nil)
	require.NoError(t, err)
	after, afterTerm := s.Last()

	require.Equal(t, before, after)
	require.Equal(t, beforeTerm, afterTerm)
}

func TestMemoryStoreLookupAndRange(t *testing.T) {
	s := NewMemoryStore(NewStringAppendMachine())
	_, _ = s.Append([]Entry{
		{Term: 1, Value: []byte("a")},
		{Term: 1, Value: []byte("b")},
		{Term: 2, Value: []byte("c")},
	})

	e, ok := s.Lookup(2)
	require.True(t, ok)
	require.Equal(t, uint64(1), e.Term)
	require.Equal(t, []byte("b"), e.Value)

	_, ok = s.Lookup(0)
	require.False(t, ok)
	_, ok = s.Lookup(4)
	require.False(t, ok)

	got := s.Range(2, 10)
	require.Len(t, got, 2)
	require.Equal(t, []byte("b"), got[0].Value)
	require.Equal(t, []byte("c"), got[1].Value)

	require.Empty(t, s.Range(10, 5))
}

func TestMemoryStoreTruncateIsIdempotent(t *testing.T) {
	// R1: truncate(k) twice has the same effect as once.
	s := NewMemoryStore(NewStringAppendMachine())
	_, _ = s.Append([]Entry{
		{Term: 1, Value: []byte("a")},
		{Term: 1, Value: []byte("b")},
		{Term: 2, Value: []byte("c")},
	})

	require.NoError(t, s.Truncate(1))
	idx, _ := s.Last()
	require.Equal(t, uint64(1), idx)

	require.NoError(t, s.Truncate(1))
	idx, _ = s.Last()
	require.Equal(t, uint64(1), idx)
}

func TestMemoryStoreSaveAndLoadState(t *testing.T) {
	s := NewMemoryStore(NewStringAppendMachine())

	loaded, err := s.LoadState()
	require.NoError(t, err)
	require.Equal(t, PersistentState{}, loaded)

	require.NoError(t, s.SaveState(PersistentState{Term: 4, VotedFor: "b"}))
	loaded, err = s.LoadState()
	require.NoError(t, err)
	require.Equal(t, PersistentState{Term: 4, VotedFor: "b"}, loaded)
}

func TestDocumentStateMachineRejectsOutOfOrderUpdates(t *testing.T) {
	m := NewDocumentStateMachine()

	first := mustEncodeUpdate(t, DocumentUpdateRequest{Key: "k", Sequence: 5, Value: "v1"})
	var r1 DocumentUpdateResult
	mustDecodeResult(t, m.Apply(first), &r1)
	require.True(t, r1.OK)
	require.Equal(t, "v1", r1.Value)

	stale := mustEncodeUpdate(t, DocumentUpdateRequest{Key: "k", Sequence: 3, Value: "v2"})
	var r2 DocumentUpdateResult
	mustDecodeResult(t, m.Apply(stale), &r2)
	require.False(t, r2.OK)
	require.Equal(t, ErrUpdatesOutOfOrder.Error(), r2.Error)

	next := mustEncodeUpdate(t, DocumentUpdateRequest{Key: "k", Sequence: 6, Value: "v3"})
	var r3 DocumentUpdateResult
	mustDecodeResult(t, m.Apply(next), &r3)
	require.True(t, r3.OK)
	require.Equal(t, "v3", r3.Value)
}
