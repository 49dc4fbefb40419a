package grpcx

import (
	"fmt"

	"github.com/raftlab/raft/transport"
)

func errUnknownPeer(peer transport.ServerID) error {
	return fmt.Errorf("grpcx: no address configured for peer %q", peer)
}
