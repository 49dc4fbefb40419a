package grpcx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/raftlab/raft/transport"
)

func TestEnvelopeRoundTripsAllMessageKinds(t *testing.T) {
	cases := []interface{}{
		&transport.RequestVoteRequest{Term: 3, Source: "A", LastLogIndex: 5, LastLogTerm: 2},
		&transport.RequestVoteResponse{Term: 3, Source: "B", VoteGranted: true},
		&transport.AppendEntriesRequest{Term: 3, Source: "A", PrevLogIndex: 4, PrevLogTerm: 2, CommitIndex: 4},
		&transport.AppendEntriesResponse{Term: 3, Source: "B", Success: true, MatchIndex: 5},
	}

	for _, msg := range cases {
		env, err := encodeEnvelope(msg)
		require.NoError(t, err)

		decoded, err := decodeEnvelope(env)
		require.NoError(t, err)
		require.Equal(t, msg, decoded)
	}
}

func TestEncodeEnvelopeRejectsUnknownType(t *testing.T) {
	_, err := encodeEnvelope("not a raft message")
	require.Error(t, err)
}

func TestDecodeEnvelopeRejectsUnknownKind(t *testing.T) {
	_, err := decodeEnvelope(&Envelope{Kind: "Bogus", Payload: []byte("{}")})
	require.Error(t, err)
}
