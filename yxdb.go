// Package yxdb reads and writes the YXDB binary table file format: a
// fixed 512-byte header, an XML schema embedded as UTF-16LE text, a
// two-level LZF-compressed block stream, and a trailing block index.
//
// Open and Create are thin convenience wrappers over package
// yxdbfile, which does the actual work; most callers only need this
// top-level package.
package yxdb

import (
	"io"

	"github.com/yxdbio/yxdb/record"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/yxdbfile"
)

// File is a re-export of yxdbfile.Reader's decoded header/schema pair
// plus the live record stream.
type File = yxdbfile.Reader

// Writer is a re-export of yxdbfile.Writer.
type Writer = yxdbfile.Writer

// RecordInfo is a re-export of schema.RecordInfo, the decoded schema.
type RecordInfo = schema.RecordInfo

// Field is a re-export of schema.Field.
type Field = schema.Field

// Record is a re-export of record.Record.
type Record = record.Record

// FieldValue is a re-export of record.FieldValue.
type FieldValue = record.FieldValue

// ReaderOption is a re-export of yxdbfile.ReaderOption.
type ReaderOption = yxdbfile.ReaderOption

// WriterOption is a re-export of yxdbfile.WriterOption.
type WriterOption = yxdbfile.WriterOption

// WithDescription is a re-export of yxdbfile.WithDescription.
var WithDescription = yxdbfile.WithDescription

// Open decodes a YXDB file's header and schema from r and returns a
// File ready to stream records from.
func Open(r io.Reader, opts ...ReaderOption) (*File, error) {
	return yxdbfile.Open(r, opts...)
}

// Create returns a Writer that encodes records matching info to dst.
func Create(dst io.Writer, info RecordInfo, opts ...WriterOption) (*Writer, error) {
	return yxdbfile.Create(dst, info, opts...)
}
