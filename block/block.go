package block

import (
	"errors"
	"io"

	"github.com/yxdbio/yxdb/internal/pool"
	"github.com/yxdbio/yxdb/wire"
)

// Reader decodes a stream of miniblocks into one logical byte stream.
// It implements io.Reader, pulling and decompressing at most one
// miniblock's worth of bytes at a time so a caller driving it through
// a record decoder never holds more than that in memory. The
// decompression scratch buffer comes from the internal/pool decompress
// pool and is returned once the stream is exhausted.
type Reader struct {
	src     *wire.Reader
	scratch *pool.ByteBuffer
	pooled  bool
	cur     []byte
	pos     int
	done    bool
}

// NewReader returns a Reader pulling miniblocks from src. src is
// typically bounded to the header's published block-region byte count
// (yxdbfile.Open wraps it in a bounded reader). bufSize bounds the
// scratch buffer a compressed miniblock is decompressed into; 0 (or
// pool.DecompressBufferSize itself) uses the pooled default buffer,
// any other positive value allocates a dedicated one sized to match.
func NewReader(src *wire.Reader, bufSize int) *Reader {
	scratch, pooled := acquireScratch(bufSize)

	return &Reader{src: src, scratch: scratch, pooled: pooled}
}

func acquireScratch(bufSize int) (buf *pool.ByteBuffer, pooled bool) {
	if bufSize <= 0 || bufSize == pool.DecompressBufferSize {
		return pool.GetDecompressBuffer(), true
	}

	return pool.NewByteBuffer(bufSize), false
}

// Read implements io.Reader. It returns io.EOF once the underlying
// miniblock stream is exhausted; any other error is a fatal decode
// failure (truncated miniblock, decompression overflow, and so on).
func (r *Reader) Read(p []byte) (int, error) {
	for r.pos >= len(r.cur) {
		if r.done {
			return 0, io.EOF
		}

		payload, err := decodeMiniblock(r.src, r.scratch)
		if err != nil {
			r.release()

			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}

			return 0, err
		}

		r.cur = payload
		r.pos = 0
	}

	n := copy(p, r.cur[r.pos:])
	r.pos += n

	return n, nil
}

// release marks the Reader exhausted and returns its scratch buffer to
// the pool, if it came from the pool (a non-default bufSize allocates
// a dedicated buffer instead, which is simply left for GC). Safe to
// call once the caller is done reading r.cur, since decodeMiniblock
// never hands out a slice that outlives the next call.
func (r *Reader) release() {
	r.done = true

	if r.scratch != nil {
		if r.pooled {
			pool.PutDecompressBuffer(r.scratch)
		}

		r.scratch = nil
	}
}

// Writer encodes a byte stream into miniblocks, splitting at
// miniblockThreshold boundaries. Close must be called to flush any
// buffered tail, and emits a single empty miniblock if Write was
// never called (the empty-block encoding in spec.md §4.3). The
// assembly buffer comes from the internal/pool miniblock pool and is
// returned to it on Close.
type Writer struct {
	dst       *wire.Writer
	buf       *pool.ByteBuffer
	threshold int
	wroteAny  bool
}

// NewWriter returns a Writer appending encoded miniblocks to dst, each
// holding at most threshold bytes before being flushed. threshold <= 0
// uses DefaultMiniblockThreshold.
func NewWriter(dst *wire.Writer, threshold int) *Writer {
	if threshold <= 0 {
		threshold = DefaultMiniblockThreshold
	}

	return &Writer{dst: dst, buf: pool.GetMiniblockBuffer(), threshold: threshold}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	total := len(p)

	for len(p) > 0 {
		room := w.threshold - w.buf.Len()
		n := len(p)
		if n > room {
			n = room
		}

		w.buf.MustWrite(p[:n])
		p = p[n:]

		if w.buf.Len() >= w.threshold {
			if err := w.flushChunk(); err != nil {
				return 0, err
			}
		}
	}

	return total, nil
}

// Close flushes any buffered tail as a final miniblock and returns the
// assembly buffer to the pool.
func (w *Writer) Close() error {
	if w.buf == nil {
		return nil
	}

	var err error
	if w.buf.Len() > 0 || !w.wroteAny {
		err = w.flushChunk()
	}

	pool.PutMiniblockBuffer(w.buf)
	w.buf = nil

	return err
}

func (w *Writer) flushChunk() error {
	if err := encodeMiniblock(w.dst, w.buf.Bytes()); err != nil {
		return err
	}

	w.wroteAny = true
	w.buf.Reset()

	return nil
}
