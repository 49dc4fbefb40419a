package grpcx

import (
	"context"

	"google.golang.org/grpc"
)

// RaftTransportServer is what RegisterRaftTransportServer expects: one
// unary Cast method mirroring transport.Transport.Cast's fire-and-forget
// contract, just made synchronous across the wire (the Empty response only
// confirms delivery to this process's gRPC handler, never processing).
type RaftTransportServer interface {
	Cast(ctx context.Context, env *Envelope) (*Empty, error)
}

// RaftTransportClient is the generated-style client stub NewRaftTransportClient
// returns.
type RaftTransportClient interface {
	Cast(ctx context.Context, env *Envelope, opts ...grpc.CallOption) (*Empty, error)
}

const serviceName = "raftx.Transport"

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RaftTransportServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Cast", Handler: castHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "raftlab/transport/grpcx",
}

func castHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Envelope)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RaftTransportServer).Cast(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Cast"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RaftTransportServer).Cast(ctx, req.(*Envelope))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterRaftTransportServer wires srv into s under the Cast method.
func RegisterRaftTransportServer(s *grpc.Server, srv RaftTransportServer) {
	s.RegisterService(&serviceDesc, srv)
}

type raftTransportClient struct {
	cc *grpc.ClientConn
}

// NewRaftTransportClient returns a client stub bound to cc. cc must have
// been dialed with WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})) —
// see Dial in client.go.
func NewRaftTransportClient(cc *grpc.ClientConn) RaftTransportClient {
	return &raftTransportClient{cc: cc}
}

func (c *raftTransportClient) Cast(ctx context.Context, env *Envelope, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Cast", env, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
