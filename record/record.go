// Package record implements the per-record codec: given a decoded
// schema, it reads or writes one record's fields in schema order by
// delegating to package fieldcodec, and exposes a pull-based stream
// over an entire block payload.
package record

import (
	"errors"
	"fmt"
	"io"

	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/fieldcodec"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/wire"
)

// FieldValue is one decoded (or to-be-encoded) field value.
type FieldValue = fieldcodec.Value

// Record is one row: a FieldValue per schema field, in schema order.
type Record struct {
	Values []FieldValue
}

// Decoder pulls records from a block payload stream until the stream
// is exhausted. It must not be given a count up front: it stops at
// end-of-input and fails if a partial record is left dangling.
type Decoder struct {
	r       *wire.Reader
	schema  schema.RecordInfo
	lastErr error
}

// NewDecoder returns a Decoder reading records described by info from r.
func NewDecoder(r *wire.Reader, info schema.RecordInfo) *Decoder {
	return &Decoder{r: r, schema: info}
}

// Next returns the next record, or io.EOF once the stream is cleanly
// exhausted between records. A partial record at end-of-input is a
// fatal error, not io.EOF.
func (d *Decoder) Next() (Record, error) {
	values := make([]FieldValue, len(d.schema.Fields))

	for i, f := range d.schema.Fields {
		v, err := fieldcodec.ReadField(d.r, f)
		if err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}

			wrapped := fmt.Errorf("%w: %v", errs.ErrRecordTruncated, err)
			d.lastErr = wrapped

			return Record{}, wrapped
		}

		values[i] = v
	}

	return Record{Values: values}, nil
}

// All is a range-over-func convenience over Next: `for rec := range
// dec.All()`. It stops silently at end-of-stream; call Err afterward
// to distinguish a clean end from a decode failure.
func (d *Decoder) All() func(yield func(Record) bool) {
	return func(yield func(Record) bool) {
		for {
			rec, err := d.Next()
			if err != nil {
				return
			}

			if !yield(rec) {
				return
			}
		}
	}
}

// Err returns the last non-EOF error Next produced, if any. It is
// intended to be checked after an All() iteration ends.
func (d *Decoder) Err() error {
	return d.lastErr
}

// Encoder writes records described by info to w in schema order. w is
// an io.Writer rather than a *wire.Writer so an Encoder can sit
// directly in front of a block.Writer: each record's fixed portion is
// assembled in a small scratch buffer and flushed through w in one
// call, keeping at most one record resident rather than the whole
// stream.
type Encoder struct {
	w      io.Writer
	schema schema.RecordInfo
}

// NewEncoder returns an Encoder writing records described by info to w.
// It returns an error immediately if info declares any variable-width
// field, since the write path for variable data is unimplemented
// (spec.md §1 Non-goals).
func NewEncoder(w io.Writer, info schema.RecordInfo) (*Encoder, error) {
	if info.HasVariableData() {
		return nil, errs.ErrVariableDataUnimplemented
	}

	return &Encoder{w: w, schema: info}, nil
}

// Write encodes one record. len(rec.Values) must equal the field count.
func (e *Encoder) Write(rec Record) error {
	if len(rec.Values) != len(e.schema.Fields) {
		return fmt.Errorf("%w: got %d, want %d", errs.ErrFieldCountMismatch, len(rec.Values), len(e.schema.Fields))
	}

	buf := wire.NewWriter()

	for i, f := range e.schema.Fields {
		if err := fieldcodec.WriteField(buf, f, rec.Values[i]); err != nil {
			return err
		}
	}

	_, err := e.w.Write(buf.Bytes())

	return err
}
