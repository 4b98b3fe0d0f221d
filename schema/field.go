// Package schema decodes and encodes the YXDB RecordInfo document: the
// XML schema embedded in the file as UTF-16LE text with a trailing
// newline-then-NUL sentinel.
package schema

import "github.com/yxdbio/yxdb/format"

// Field is one named column of a RecordInfo, in document order.
type Field struct {
	Name string
	Type format.Type

	// Size and Scale are optional; HasSize/HasScale report whether the
	// source XML carried the corresponding attribute so re-encoding can
	// omit it exactly as spec.md §8 requires ("size and scale absent in
	// emitted XML" when the source omitted them).
	Size     int
	HasSize  bool
	Scale    int
	HasScale bool
}
