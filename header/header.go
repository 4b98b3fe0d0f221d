// Package header implements the fixed 512-byte YXDB file header: the
// packed little-endian fields at the start of every file, plus the
// description text and the reserved/mystery regions that must survive
// decode-then-encode untouched.
package header

import (
	"bytes"
	"encoding/binary"
	"time"

	"github.com/yxdbio/yxdb/errs"
)

const (
	// PageSize is the fixed on-disk size of the header.
	PageSize = 512

	// FileIDWithSpatialIndex marks a file that carries a spatial index.
	FileIDWithSpatialIndex = 0x00440205
	// FileIDWithoutSpatialIndex marks a file with no spatial index.
	FileIDWithoutSpatialIndex = 0x00440204

	descriptionSize = 64

	offDescription        = 0x000
	offFileID              = 0x040
	offCreationDate        = 0x044
	offFlags1              = 0x048
	offFlags2              = 0x04C
	offMetaInfoLength      = 0x050
	offMystery             = 0x054
	offSpatialIndexPos     = 0x058
	offRecordBlockIndexPos = 0x060
	offNumRecords          = 0x068
	offCompressionVersion  = 0x070
	offReserved            = 0x074

	reservedSize = PageSize - offReserved
)

// Header is the decoded form of the file's fixed 512-byte page.
type Header struct {
	// Description is UTF-8, at most 64 bytes; shorter values are
	// zero-padded on encode, longer ones truncated.
	Description string

	FileID       uint32
	CreationDate time.Time
	Flags1       uint32
	Flags2       uint32

	// MetaInfoLength is the schema region's size in UTF-16 code units
	// (i.e. half its byte length).
	MetaInfoLength uint32

	// Mystery is an opaque field of unknown semantics; it must be
	// preserved byte-for-byte across decode→encode (spec.md §9).
	Mystery uint32

	SpatialIndexPos     uint64
	RecordBlockIndexPos uint64
	NumRecords          uint64
	CompressionVersion  uint32

	// Reserved is the opaque tail of the page (offset 0x074 to 0x200);
	// preserved byte-for-byte like Mystery.
	Reserved [reservedSize]byte
}

// Parse decodes a 512-byte header page. raw must be exactly PageSize
// bytes; callers typically read it from the start of the file.
func Parse(raw []byte) (Header, error) {
	if len(raw) != PageSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	var h Header

	h.Description = string(bytes.TrimRight(raw[offDescription:offDescription+descriptionSize], "\x00"))
	h.FileID = binary.LittleEndian.Uint32(raw[offFileID:])
	h.CreationDate = time.Unix(int64(binary.LittleEndian.Uint32(raw[offCreationDate:])), 0).UTC()
	h.Flags1 = binary.LittleEndian.Uint32(raw[offFlags1:])
	h.Flags2 = binary.LittleEndian.Uint32(raw[offFlags2:])
	h.MetaInfoLength = binary.LittleEndian.Uint32(raw[offMetaInfoLength:])
	h.Mystery = binary.LittleEndian.Uint32(raw[offMystery:])
	h.SpatialIndexPos = binary.LittleEndian.Uint64(raw[offSpatialIndexPos:])
	h.RecordBlockIndexPos = binary.LittleEndian.Uint64(raw[offRecordBlockIndexPos:])
	h.NumRecords = binary.LittleEndian.Uint64(raw[offNumRecords:])
	h.CompressionVersion = binary.LittleEndian.Uint32(raw[offCompressionVersion:])
	copy(h.Reserved[:], raw[offReserved:PageSize])

	return h, nil
}

// Bytes encodes h to its 512-byte on-disk form.
func (h Header) Bytes() []byte {
	buf := make([]byte, PageSize)

	desc := []byte(h.Description)
	if len(desc) > descriptionSize {
		desc = desc[:descriptionSize]
	}
	copy(buf[offDescription:offDescription+descriptionSize], desc)

	binary.LittleEndian.PutUint32(buf[offFileID:], h.FileID)
	binary.LittleEndian.PutUint32(buf[offCreationDate:], uint32(h.CreationDate.Unix()))
	binary.LittleEndian.PutUint32(buf[offFlags1:], h.Flags1)
	binary.LittleEndian.PutUint32(buf[offFlags2:], h.Flags2)
	binary.LittleEndian.PutUint32(buf[offMetaInfoLength:], h.MetaInfoLength)
	binary.LittleEndian.PutUint32(buf[offMystery:], h.Mystery)
	binary.LittleEndian.PutUint64(buf[offSpatialIndexPos:], h.SpatialIndexPos)
	binary.LittleEndian.PutUint64(buf[offRecordBlockIndexPos:], h.RecordBlockIndexPos)
	binary.LittleEndian.PutUint64(buf[offNumRecords:], h.NumRecords)
	binary.LittleEndian.PutUint32(buf[offCompressionVersion:], h.CompressionVersion)
	copy(buf[offReserved:PageSize], h.Reserved[:])

	return buf
}
