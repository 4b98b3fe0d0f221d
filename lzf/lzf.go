// Package lzf implements the LZF miniblock compressor/decompressor
// used by package block. LZF here is a classic literal-run /
// back-reference byte-oriented compressor: a control byte either
// starts a literal run (control < 32, run length = control+1) or a
// back-reference (control >= 32: top 3 bits plus an optional extension
// byte encode the match length, the low 5 bits plus the following byte
// encode the offset) — the same scheme Redis uses for RDB string
// compression, so the codec is grounded on zhuyie/golzf rather than
// hand-rolled (see DESIGN.md).
package lzf

import (
	"github.com/zhuyie/golzf"

	"github.com/yxdbio/yxdb/errs"
)

// Codec compresses and decompresses payloads using the LZF scheme.
// It holds no state between calls and is safe for concurrent use.
type Codec struct{}

// New returns an LZF Codec.
func New() *Codec {
	return &Codec{}
}

// Compress attempts to compress payload into at most maxOut bytes.
// It reports ok=false if the compressed form would not fit, matching
// spec.md's "compression is only accepted when it saves at least one
// byte" contract (callers pass maxOut = len(payload)-1).
func (c *Codec) Compress(payload []byte, maxOut int) (out []byte, ok bool) {
	if maxOut <= 0 || len(payload) == 0 {
		return nil, false
	}

	dst := make([]byte, maxOut)

	n, err := golzf.Compress(payload, dst)
	if err != nil {
		return nil, false
	}

	return dst[:n], true
}

// Decompress decompresses payload into a freshly allocated buffer of
// capacity bufSize. It returns errs.ErrDecompressOverflow if the
// decompressed output would exceed bufSize, or does not form a
// well-formed LZF stream.
func (c *Codec) Decompress(payload []byte, bufSize int) ([]byte, error) {
	dst := make([]byte, bufSize)

	n, err := c.DecompressInto(dst, payload)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// DecompressInto decompresses payload into dst without allocating,
// returning the number of bytes written. dst's capacity bounds the
// decompressed size the same way bufSize does for Decompress; callers
// that reuse a pooled buffer across many miniblocks should prefer this
// over Decompress.
func (c *Codec) DecompressInto(dst, payload []byte) (int, error) {
	n, err := golzf.Decompress(payload, dst)
	if err != nil {
		return 0, errs.ErrDecompressOverflow
	}

	return n, nil
}
