package grpcx

import (
	"encoding/json"
	"fmt"

	"github.com/raftlab/raft/transport"
)

// Envelope is the one message type that actually crosses the wire: a kind
// tag plus the JSON-encoded payload of one of transport's four message
// structs. The jsonCodec marshals Envelope itself with encoding/json, so
// this is the whole wire schema.
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Empty is the Cast RPC's fixed, content-free response.
type Empty struct{}

const (
	kindRequestVoteRequest    = "RequestVoteRequest"
	kindRequestVoteResponse   = "RequestVoteResponse"
	kindAppendEntriesRequest  = "AppendEntriesRequest"
	kindAppendEntriesResponse = "AppendEntriesResponse"
)

// encodeEnvelope wraps one of transport's message structs for the wire.
func encodeEnvelope(msg interface{}) (*Envelope, error) {
	var kind string
	switch msg.(type) {
	case *transport.RequestVoteRequest:
		kind = kindRequestVoteRequest
	case *transport.RequestVoteResponse:
		kind = kindRequestVoteResponse
	case *transport.AppendEntriesRequest:
		kind = kindAppendEntriesRequest
	case *transport.AppendEntriesResponse:
		kind = kindAppendEntriesResponse
	default:
		return nil, fmt.Errorf("grpcx: unsupported message type %T", msg)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Envelope{Kind: kind, Payload: payload}, nil
}

// decodeEnvelope reconstructs the concrete message a transport.Handler
// expects from an Envelope received over the wire.
func decodeEnvelope(env *Envelope) (interface{}, error) {
	switch env.Kind {
	case kindRequestVoteRequest:
		var m transport.RequestVoteRequest
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case kindRequestVoteResponse:
		var m transport.RequestVoteResponse
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case kindAppendEntriesRequest:
		var m transport.AppendEntriesRequest
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return nil, err
		}
		return &m, nil
	case kindAppendEntriesResponse:
		var m transport.AppendEntriesResponse
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return nil, err
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("grpcx: unknown envelope kind %q", env.Kind)
	}
}
