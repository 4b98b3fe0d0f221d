// Package block implements the miniblock and block container layers
// of the YXDB wire format: a block is a concatenation of miniblock
// payloads, each independently LZF-compressed (or stored raw) behind
// a 4-byte length-and-flag prefix.
package block

import (
	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/internal/pool"
	"github.com/yxdbio/yxdb/lzf"
	"github.com/yxdbio/yxdb/wire"
)

const (
	// DefaultMiniblockThreshold is the encode-side split boundary for
	// chunking an unbounded payload into miniblocks, used unless a
	// Writer is constructed with a different threshold.
	DefaultMiniblockThreshold = 1 << 16

	rawFlag = uint32(0x8000_0000)
	lenMask = uint32(0x7FFF_FFFF)
)

var codec = lzf.New()

// decodeMiniblock reads one miniblock from r: a u32le length-and-flag
// word followed by that many payload bytes. It returns the decoded
// (decompressed, if applicable) payload. A compressed payload is
// decompressed into scratch, a buffer (pool.DecompressBufferSize
// capacity by default) the caller owns and reuses across calls, so a long record
// stream never allocates a fresh decompression buffer per miniblock.
func decodeMiniblock(r *wire.Reader, scratch *pool.ByteBuffer) ([]byte, error) {
	writtenSize, err := r.Uint32()
	if err != nil {
		return nil, err
	}

	payloadLen := writtenSize & lenMask
	compressed := writtenSize&rawFlag == 0

	payload, err := r.Bytes(int(payloadLen))
	if err != nil {
		return nil, err
	}

	if !compressed {
		return payload, nil
	}

	n, err := codec.DecompressInto(scratch.Slice(0, scratch.Cap()), payload)
	if err != nil {
		return nil, err
	}

	scratch.SetLength(n)

	return scratch.Bytes(), nil
}

// encodeMiniblock appends the encoded form of payload to w: an attempt
// at LZF compression bounded to len(payload)-1 output bytes, falling
// back to a raw (flagged) miniblock when compression does not save at
// least one byte.
func encodeMiniblock(w *wire.Writer, payload []byte) error {
	if len(payload) > int(lenMask) {
		return errs.ErrPayloadTooLarge
	}

	if len(payload) > 0 {
		if compressed, ok := codec.Compress(payload, len(payload)-1); ok {
			w.PutUint32(uint32(len(compressed)))
			w.PutBytes(compressed)

			return nil
		}
	}

	rawLen := uint32(len(payload))
	if rawLen&rawFlag != 0 {
		return errs.ErrPayloadTooLarge
	}

	w.PutUint32(rawLen | rawFlag)
	w.PutBytes(payload)

	return nil
}
