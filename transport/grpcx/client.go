package grpcx

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/raftlab/raft/transport"
)

// Dial opens a client connection to a peer's grpcx.Server, with the JSON
// codec forced so no generated protobuf type is ever required on either
// side.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.Dial(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
}

// Transport implements transport.Transport over gRPC: Cast looks up peer's
// dialed connection (dialing lazily and caching it) and fires the RPC on
// its own goroutine, so the caller is never blocked — matching the
// fire-and-forget contract transport.Transport documents, now extended
// across a real network where calls can also simply fail.
type Transport struct {
	mu      sync.Mutex
	clients map[transport.ServerID]RaftTransportClient
	addrs   map[transport.ServerID]string
	timeout time.Duration
	logger  *zap.Logger
}

var _ transport.Transport = (*Transport)(nil)

// NewTransport returns a Transport that dials addrs[peer] the first time
// Cast targets peer. timeout bounds each individual RPC attempt.
func NewTransport(addrs map[transport.ServerID]string, timeout time.Duration, logger *zap.Logger) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		clients: make(map[transport.ServerID]RaftTransportClient),
		addrs:   addrs,
		timeout: timeout,
		logger:  logger,
	}
}

func (t *Transport) clientFor(peer transport.ServerID) (RaftTransportClient, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[peer]; ok {
		return c, nil
	}
	addr, ok := t.addrs[peer]
	if !ok {
		return nil, errUnknownPeer(peer)
	}
	cc, err := Dial(addr)
	if err != nil {
		return nil, err
	}
	c := NewRaftTransportClient(cc)
	t.clients[peer] = c
	return c, nil
}

// Cast fires env at peer on its own goroutine. A dial failure, a decode
// failure, or a peer that never answers are all equally "the message was
// dropped" from the engine's point of view — logged, never propagated,
// per transport.Transport's best-effort contract.
func (t *Transport) Cast(peer transport.ServerID, msg interface{}) {
	go func() {
		client, err := t.clientFor(peer)
		if err != nil {
			t.logger.Error("grpcx: no route to peer", zap.String("peer", string(peer)), zap.Error(err))
			return
		}

		env, err := encodeEnvelope(msg)
		if err != nil {
			t.logger.Error("grpcx: cannot encode message", zap.String("peer", string(peer)), zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
		defer cancel()
		if _, err := client.Cast(ctx, env); err != nil {
			t.logger.Debug("grpcx: cast failed", zap.String("peer", string(peer)), zap.Error(err))
		}
	}()
}
