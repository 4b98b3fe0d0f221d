package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yxdbio/yxdb/wire"
)

func TestIndex_RoundTrip(t *testing.T) {
	idx := Index{Offsets: []uint64{512, 1024, 2048}}

	w := wire.NewWriter()
	EncodeIndex(w, idx)

	r := wire.NewReader(bytes.NewReader(w.Bytes()), "index")
	decoded, err := DecodeIndex(r)
	require.NoError(t, err)
	require.Equal(t, idx, decoded)
}

func TestIndex_Empty(t *testing.T) {
	w := wire.NewWriter()
	EncodeIndex(w, Index{})

	require.Equal(t, []byte{0, 0, 0, 0}, w.Bytes())

	r := wire.NewReader(bytes.NewReader(w.Bytes()), "index")
	decoded, err := DecodeIndex(r)
	require.NoError(t, err)
	require.Empty(t, decoded.Offsets)
}
