// Package wire provides the little-endian primitive reader/writer the
// rest of the codec builds on: fixed-width integers, raw byte runs, and
// a bounded "isolate" sub-reader that enforces exact region consumption.
//
// The YXDB wire format is always little-endian, so unlike mebo's
// endian.EndianEngine (which supports both byte orders), Reader and
// Writer here hard-code binary.LittleEndian.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/yxdbio/yxdb/errs"
)

// Reader wraps an io.Reader with little-endian primitive get operations
// and tracks a label used to annotate errors with the region being
// parsed.
type Reader struct {
	r     io.Reader
	label string
}

// NewReader returns a Reader over r. label identifies the region being
// parsed, for error messages.
func NewReader(r io.Reader, label string) *Reader {
	return &Reader{r: r, label: label}
}

// Label returns the region label this reader was constructed with.
func (r *Reader) Label() string {
	return r.label
}

func (r *Reader) wrap(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", r.label, err)
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, r.wrap(err)
	}

	return buf, nil
}

// Remaining reads all bytes through end-of-input.
func (r *Reader) Remaining() ([]byte, error) {
	buf, err := io.ReadAll(r.r)
	if err != nil {
		return nil, r.wrap(err)
	}

	return buf, nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// Isolate reads exactly n bytes and runs inner against a Reader scoped
// to that slice. If inner does not consume exactly n bytes,
// Isolate fails with errs.ErrTruncatedRegion: this is the mechanism
// spec.md uses to make every region's size self-enforcing.
func Isolate(r *Reader, n int, label string, inner func(*Reader) error) error {
	region, err := r.Bytes(n)
	if err != nil {
		return err
	}

	sub := NewReader(newCountingReader(region), label)
	if err := inner(sub); err != nil {
		if sub.r.(*countingReader).remaining() == 0 &&
			(errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
			return fmt.Errorf("%s: %w: inner parser read past the %d-byte region: %v",
				label, errs.ErrTruncatedRegion, n, err)
		}

		return err
	}

	if sub.r.(*countingReader).remaining() != 0 {
		return fmt.Errorf("%s: %w: expected %d bytes, consumed %d",
			label, errs.ErrTruncatedRegion, n, n-sub.r.(*countingReader).remaining())
	}

	return nil
}

// countingReader wraps a fixed byte slice and reports how many bytes
// remain unconsumed, so Isolate can detect under- or over-consumption.
type countingReader struct {
	data []byte
	pos  int
}

func newCountingReader(data []byte) *countingReader {
	return &countingReader{data: data}
}

func (c *countingReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}

	n := copy(p, c.data[c.pos:])
	c.pos += n

	return n, nil
}

func (c *countingReader) remaining() int {
	return len(c.data) - c.pos
}
