package grpcx

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/raftlab/raft/transport"
)

// Server exposes one engine's transport.Handler as a gRPC service. It holds
// no routing table: a process runs one Server per local engine, since Cast
// always targets "this process's engine", the same shape Deliver has.
type Server struct {
	handler transport.Handler
	logger  *zap.Logger
}

// NewServer returns a Server that hands every decoded message to handler
// (ordinarily an engine's Deliver method).
func NewServer(handler transport.Handler, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{handler: handler, logger: logger}
}

// NewGRPCServer builds a *grpc.Server with the JSON codec forced (so peers
// never need protobuf-generated types) and srv registered on it.
func NewGRPCServer(srv *Server) *grpc.Server {
	s := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	RegisterRaftTransportServer(s, srv)
	return s
}

func (s *Server) Cast(ctx context.Context, env *Envelope) (*Empty, error) {
	msg, err := decodeEnvelope(env)
	if err != nil {
		s.logger.Error("grpcx: dropping undecodable envelope", zap.String("kind", env.Kind), zap.Error(err))
		return &Empty{}, nil
	}
	s.handler(msg)
	return &Empty{}, nil
}
