package yxdbfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/yxdbio/yxdb/block"
	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/header"
	"github.com/yxdbio/yxdb/internal/options"
	"github.com/yxdbio/yxdb/record"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/wire"
)

// Reader decodes a YXDB file's header and schema eagerly, then exposes
// records as a pull-based stream over the (still-compressed) block
// region of the underlying io.Reader.
type Reader struct {
	Header Header
	Schema schema.RecordInfo

	src     io.Reader
	dec     *record.Decoder
	cfg     *readerConfig
	numSeen uint64
}

// Header is an alias for header.Header, re-exported so callers need
// not import the header package for the common case.
type Header = header.Header

// Open decodes the header and schema from r and returns a Reader ready
// to stream records via Next or Records. r is consumed sequentially;
// ReadBlockIndex must only be called after the record stream has been
// fully drained to io.EOF.
func Open(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	cfg := defaultReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	wr := wire.NewReader(r, "header")

	raw, err := wr.Bytes(header.PageSize)
	if err != nil {
		return nil, err
	}

	h, err := header.Parse(raw)
	if err != nil {
		return nil, err
	}

	schemaBytes, err := wr.Bytes(int(h.MetaInfoLength) * 2)
	if err != nil {
		return nil, err
	}

	info, err := schema.Decode(schemaBytes)
	if err != nil {
		return nil, err
	}

	numBlockBytes := int(h.RecordBlockIndexPos) - (header.PageSize + int(h.MetaInfoLength)*2)
	if numBlockBytes < 0 {
		return nil, fmt.Errorf("yxdb: recordBlockIndexPos precedes end of schema region")
	}

	bounded := newBoundedReader(r, numBlockBytes, "block")
	br := block.NewReader(wire.NewReader(bounded, "miniblock"), cfg.decompressBufferSize)
	rr := wire.NewReader(br, "records")
	dec := record.NewDecoder(rr, info)

	return &Reader{Header: h, Schema: info, src: r, dec: dec, cfg: cfg}, nil
}

// Next returns the next record, or io.EOF once the block stream is
// cleanly exhausted.
func (f *Reader) Next() (record.Record, error) {
	rec, err := f.dec.Next()
	if err == nil {
		f.numSeen++
	}

	return rec, err
}

// Records returns a range-over-func iterator convenience over Next.
func (f *Reader) Records() func(yield func(record.Record) bool) {
	return func(yield func(record.Record) bool) {
		for {
			rec, err := f.Next()
			if err != nil {
				return
			}

			if !yield(rec) {
				return
			}
		}
	}
}

// Materialize collects every remaining record into memory. spec.md §9
// flags the in-memory list as the slow path; prefer Next/Records for
// large files.
func (f *Reader) Materialize() ([]record.Record, error) {
	var out []record.Record

	for {
		rec, err := f.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return nil, err
		}

		out = append(out, rec)
	}
}

// Validate compares the number of records actually decoded against
// the header's advisory NumRecords, when WithStrictNumRecords was
// given to Open. It must be called only after the stream has been
// fully drained.
func (f *Reader) Validate() error {
	if !f.cfg.strictNumRecords {
		return nil
	}

	if f.numSeen != f.Header.NumRecords {
		return fmt.Errorf("%w: header advertises %d records, decoded %d",
			errs.ErrFieldCountMismatch, f.Header.NumRecords, f.numSeen)
	}

	return nil
}

// ReadBlockIndex decodes the trailing block index. The record stream
// must already be fully drained (Next returning io.EOF), since the
// index immediately follows the block region in the underlying
// io.Reader.
func (f *Reader) ReadBlockIndex() (block.Index, error) {
	wr := wire.NewReader(f.src, "blockindex")
	return block.DecodeIndex(wr)
}

// boundedReader streams at most n bytes from r without materializing
// them, failing if r ends before n bytes have been delivered. It
// generalizes wire.Isolate's exact-consumption check to a long-lived
// stream that outlives a single closure call, which a record decoder
// held across many Reader.Next calls requires.
type boundedReader struct {
	r         io.Reader
	remaining int
	label     string
}

func newBoundedReader(r io.Reader, n int, label string) *boundedReader {
	return &boundedReader{r: r, remaining: n, label: label}
}

func (b *boundedReader) Read(p []byte) (int, error) {
	if b.remaining <= 0 {
		return 0, io.EOF
	}

	if len(p) > b.remaining {
		p = p[:b.remaining]
	}

	n, err := b.r.Read(p)
	b.remaining -= n

	if err == io.EOF && b.remaining > 0 {
		return n, fmt.Errorf("%s: %w: %d bytes short", b.label, errs.ErrTruncatedRegion, b.remaining)
	}

	return n, err
}
