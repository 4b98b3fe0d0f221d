// Package errs collects the sentinel errors returned by the yxdb codec
// packages. Callers use errors.Is against these to distinguish failure
// kinds; additional context is layered on with fmt.Errorf("%w: ...", ...)
// at the call site.
package errs

import "errors"

var (
	// ErrInvalidHeaderSize is returned when a Header is parsed from a
	// byte slice that is not exactly 512 bytes.
	ErrInvalidHeaderSize = errors.New("yxdb: invalid header size")

	// ErrTruncatedRegion is returned when an isolated region's parser
	// consumes fewer or more bytes than the region's declared size.
	ErrTruncatedRegion = errors.New("yxdb: region truncated or over-read")

	// ErrDecompressOverflow is returned when LZF decompression would
	// exceed the fixed output buffer size.
	ErrDecompressOverflow = errors.New("yxdb: unable to decompress; increase buffer size?")

	// ErrPayloadTooLarge is returned when a miniblock payload exceeds
	// the maximum representable length (2^31 - 1 bytes).
	ErrPayloadTooLarge = errors.New("yxdb: miniblock payload too large")

	// ErrSchemaTrailerMissing is returned when the schema region is
	// shorter than the two UTF-16 code units required for the trailer.
	ErrSchemaTrailerMissing = errors.New("yxdb: schema region too short for trailer")

	// ErrSchemaMalformed is returned when the schema region is not
	// well-formed XML.
	ErrSchemaMalformed = errors.New("yxdb: schema XML malformed")

	// ErrNoRecordInfo is returned when the schema XML contains zero
	// RecordInfo elements.
	ErrNoRecordInfo = errors.New("yxdb: no RecordInfo entries found")

	// ErrTooManyRecordInfo is returned when the schema XML contains
	// more than one RecordInfo element.
	ErrTooManyRecordInfo = errors.New("yxdb: too many RecordInfo entries found")

	// ErrFieldMissingName is returned when a Field element has no name attribute.
	ErrFieldMissingName = errors.New("yxdb: field missing name attribute")

	// ErrFieldMissingType is returned when a Field element has no type attribute.
	ErrFieldMissingType = errors.New("yxdb: field missing type attribute")

	// ErrUnknownFieldType is returned when a Field's type attribute does
	// not match any known scalar type.
	ErrUnknownFieldType = errors.New("yxdb: unknown field type")

	// ErrFieldAttrNotInt is returned when a size or scale attribute
	// cannot be parsed as a base-10 integer.
	ErrFieldAttrNotInt = errors.New("yxdb: field attribute is not an integer")

	// ErrRecordTruncated is returned when the record decoder runs off
	// the end of a block payload mid-record.
	ErrRecordTruncated = errors.New("yxdb: record truncated")

	// ErrRecordTrailingBytes names a block payload with bytes left over
	// after the last complete record. No package in this module returns
	// it: record.Decoder reports leftover bytes as ErrRecordTruncated,
	// since they form a partial record.
	ErrRecordTrailingBytes = errors.New("yxdb: trailing bytes after last record")

	// ErrVariableDataUnimplemented is returned when the caller attempts
	// to write a record whose schema declares a variable-width field.
	ErrVariableDataUnimplemented = errors.New("yxdb: variable data unimplemented")

	// ErrFieldCountMismatch is returned when a Record's value count does
	// not match its schema's field count.
	ErrFieldCountMismatch = errors.New("yxdb: record field count does not match schema")
)
