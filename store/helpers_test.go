package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustEncodeUpdate(t *testing.T, req DocumentUpdateRequest) []byte {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return b
}

func mustDecodeResult(t *testing.T, b []byte, out *DocumentUpdateResult) {
	t.Helper()
	require.NoError(t, json.Unmarshal(b, out))
}
