package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryTransportDelivers(t *testing.T) {
	hub := NewHub()
	received := make(chan interface{}, 1)
	hub.Register("b", func(msg interface{}) { received <- msg })

	a := hub.NewTransport("a")
	a.Cast("b", &RequestVoteRequest{Term: 1, Source: "a"})

	select {
	case msg := <-received:
		req, ok := msg.(*RequestVoteRequest)
		require.True(t, ok)
		require.Equal(t, uint64(1), req.Term)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestMemoryTransportDropsToUnregisteredPeer(t *testing.T) {
	hub := NewHub()
	a := hub.NewTransport("a")
	// "b" was never registered; Cast must not panic or block.
	a.Cast("b", &RequestVoteRequest{Term: 1, Source: "a"})
	time.Sleep(10 * time.Millisecond)
}

func TestMemoryTransportDropsAcrossPartition(t *testing.T) {
	hub := NewHub()
	received := make(chan interface{}, 1)
	hub.Register("b", func(msg interface{}) { received <- msg })
	hub.SetPartitioned("b", true)

	a := hub.NewTransport("a")
	a.Cast("b", &RequestVoteRequest{Term: 1, Source: "a"})

	select {
	case <-received:
		t.Fatal("message should have been dropped across the partition")
	case <-time.After(50 * time.Millisecond):
	}

	hub.SetPartitioned("b", false)
	a.Cast("b", &RequestVoteRequest{Term: 2, Source: "a"})
	select {
	case msg := <-received:
		req := msg.(*RequestVoteRequest)
		require.Equal(t, uint64(2), req.Term)
	case <-time.After(time.Second):
		t.Fatal("message was not delivered after healing the partition")
	}
}
