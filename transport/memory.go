package transport

import "sync"

// Hub is an in-process switchboard connecting MemoryTransport endpoints. It
// is the reference transport used by engine tests and local demos: delivery
// runs on its own goroutine per Cast (so the caller is never blocked) and
// can simulate partitions for failover scenarios (spec §8 scenario 3).
type Hub struct {
	mu          sync.Mutex
	handlers    map[ServerID]Handler
	partitioned map[ServerID]bool
}

// NewHub returns an empty switchboard.
func NewHub() *Hub {
	return &Hub{
		handlers:    make(map[ServerID]Handler),
		partitioned: make(map[ServerID]bool),
	}
}

// NewTransport returns a Transport that casts as id. It does not by itself
// register id as a recipient; call Register separately (usually with the
// owning engine's Deliver method) once the engine exists.
func (h *Hub) NewTransport(id ServerID) *MemoryTransport {
	return &MemoryTransport{hub: h, self: id}
}

// Register makes handler reachable as id's inbound message sink.
func (h *Hub) Register(id ServerID, handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[id] = handler
}

// Unregister removes id's inbound handler; Cast to id becomes a silent drop.
func (h *Hub) Unregister(id ServerID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.handlers, id)
}

// SetPartitioned marks id as unreachable (both as sender and recipient)
// until cleared. Used to model a network split in tests.
func (h *Hub) SetPartitioned(id ServerID, partitioned bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if partitioned {
		h.partitioned[id] = true
	} else {
		delete(h.partitioned, id)
	}
}

func (h *Hub) deliver(from, to ServerID, msg interface{}) {
	h.mu.Lock()
	if h.partitioned[from] || h.partitioned[to] {
		h.mu.Unlock()
		return
	}
	handler, ok := h.handlers[to]
	h.mu.Unlock()
	if ok {
		handler(msg)
	}
}

// MemoryTransport casts messages through its owning Hub, as ServerID self.
type MemoryTransport struct {
	hub  *Hub
	self ServerID
}

var _ Transport = (*MemoryTransport)(nil)

// Cast delivers msg to peer asynchronously and unconditionally best-effort:
// a partitioned or unregistered peer silently drops it.
func (t *MemoryTransport) Cast(peer ServerID, msg interface{}) {
	go t.hub.deliver(t.self, peer, msg)
}
