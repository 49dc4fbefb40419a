package store

import "encoding/json"

// StringAppendMachine is the toy state machine used throughout spec §8's
// concrete scenarios: every applied value is a string that gets appended to
// a running buffer, and Apply returns the buffer's new contents.
type StringAppendMachine struct {
	buf string
}

func NewStringAppendMachine() *StringAppendMachine {
	return &StringAppendMachine{}
}

func (s *StringAppendMachine) Apply(value []byte) []byte {
	s.buf += string(value)
	return []byte(s.buf)
}

// String returns the current buffer contents, for test assertions.
func (s *StringAppendMachine) String() string {
	return s.buf
}

// DocumentUpdateRequest is the opaque value a client submits to
// DocumentStateMachine.
type DocumentUpdateRequest struct {
	Key      string `json:"key"`
	Sequence uint64 `json:"sequence"`
	Value    string `json:"value"`
}

// DocumentUpdateResult is what Apply returns, JSON-encoded, as the
// deterministic state-machine output.
type DocumentUpdateResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Value string `json:"value,omitempty"`
}

type documentRecord struct {
	sequence uint64
	value    string
}

// DocumentStateMachine is a small per-key last-writer-wins store used to
// exercise the out-of-order-update rejection named in spec §8 scenario 6: a
// DocumentUpdateRequest whose sequence is not strictly greater than the last
// applied sequence for its key is rejected with ErrUpdatesOutOfOrder. The
// rejection is a property of this state machine, not of the engine or the
// store's durability contract — it rides back to the client inside the
// (successful, from the engine's point of view) apply result.
type DocumentStateMachine struct {
	docs map[string]documentRecord
}

func NewDocumentStateMachine() *DocumentStateMachine {
	return &DocumentStateMachine{docs: make(map[string]documentRecord)}
}

func (d *DocumentStateMachine) Apply(value []byte) []byte {
	var req DocumentUpdateRequest
	if err := json.Unmarshal(value, &req); err != nil {
		return mustMarshalResult(DocumentUpdateResult{OK: false, Error: "malformed request"})
	}

	if cur, exists := d.docs[req.Key]; exists && req.Sequence <= cur.sequence {
		return mustMarshalResult(DocumentUpdateResult{OK: false, Error: ErrUpdatesOutOfOrder.Error()})
	}

	d.docs[req.Key] = documentRecord{sequence: req.Sequence, value: req.Value}
	return mustMarshalResult(DocumentUpdateResult{OK: true, Value: req.Value})
}

func mustMarshalResult(r DocumentUpdateResult) []byte {
	b, err := json.Marshal(r)
	if err != nil {
		panic(err) // DocumentUpdateResult is always marshalable
	}
	return b
}
