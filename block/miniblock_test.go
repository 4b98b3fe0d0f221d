package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yxdbio/yxdb/internal/pool"
	"github.com/yxdbio/yxdb/wire"
)

func TestMiniblock_RoundTrip_Compressible(t *testing.T) {
	payload := bytes.Repeat([]byte("hello world "), 200)

	w := wire.NewWriter()
	require.NoError(t, encodeMiniblock(w, payload))

	r := wire.NewReader(bytes.NewReader(w.Bytes()), "miniblock")
	out, err := decodeMiniblock(r, pool.GetDecompressBuffer())
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestMiniblock_RoundTrip_Incompressible(t *testing.T) {
	payload := []byte{0x00, 0x01, 0x02, 0x03, 0x04}

	w := wire.NewWriter()
	require.NoError(t, encodeMiniblock(w, payload))

	// Stored-raw: high bit set on the length word.
	raw := w.Bytes()
	require.Len(t, raw, 4+len(payload))
	require.Equal(t, byte(0x80), raw[3]&0x80)

	r := wire.NewReader(bytes.NewReader(raw), "miniblock")
	out, err := decodeMiniblock(r, pool.GetDecompressBuffer())
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestMiniblock_Empty(t *testing.T) {
	w := wire.NewWriter()
	require.NoError(t, encodeMiniblock(w, nil))

	raw := w.Bytes()
	require.Len(t, raw, 4)
	require.Equal(t, byte(0x80), raw[3]&0x80, "empty payload cannot save a byte, so it is stored raw")

	r := wire.NewReader(bytes.NewReader(raw), "miniblock")
	out, err := decodeMiniblock(r, pool.GetDecompressBuffer())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMiniblock_Decode_StoredRawLiteral(t *testing.T) {
	// Literal fixture from spec: bit 31 set, payload length 5.
	raw := []byte{0x05, 0x00, 0x00, 0x80, 0x00, 0x01, 0x02, 0x03, 0x04}
	r := wire.NewReader(bytes.NewReader(raw), "miniblock")

	out, err := decodeMiniblock(r, pool.GetDecompressBuffer())
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01, 0x02, 0x03, 0x04}, out)
}
