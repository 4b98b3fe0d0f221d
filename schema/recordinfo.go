package schema

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/format"
)

// RecordInfo is the decoded schema: an ordered sequence of Field.
// Field order is significant and preserved across round-trip.
type RecordInfo struct {
	Fields []Field
}

// HasVariableData reports whether any field requires a variable-data
// tail after its fixed portion.
func (r RecordInfo) HasVariableData() bool {
	for _, f := range r.Fields {
		if f.Type.IsVariable() {
			return true
		}
	}

	return false
}

type xmlMetaInfo struct {
	XMLName    xml.Name        `xml:"MetaInfo"`
	RecordInfo []xmlRecordInfo `xml:"RecordInfo"`
}

type xmlRecordInfo struct {
	Fields []xmlField `xml:"Field"`
}

type xmlField struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (f xmlField) attr(name string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}

// Decode parses the schema region: raw is the bytes of the isolated
// metadata window (UTF-16LE text ending in the '\n' '\0' trailer).
func Decode(raw []byte) (RecordInfo, error) {
	if len(raw) < 4 {
		return RecordInfo{}, errs.ErrSchemaTrailerMissing
	}

	// The trailer is two UTF-16LE code units ('\n' then NUL); strip the
	// trailing 4 bytes before decoding the XML text.
	body := raw[:len(raw)-4]

	units := make([]uint16, len(body)/2)
	for i := range units {
		units[i] = uint16(body[2*i]) | uint16(body[2*i+1])<<8
	}

	text := string(utf16.Decode(units))

	var doc xmlMetaInfo
	if err := xml.Unmarshal([]byte(text), &doc); err != nil {
		return RecordInfo{}, fmt.Errorf("%w: %v", errs.ErrSchemaMalformed, err)
	}

	if len(doc.RecordInfo) == 0 {
		return RecordInfo{}, errs.ErrNoRecordInfo
	}

	if len(doc.RecordInfo) > 1 {
		return RecordInfo{}, errs.ErrTooManyRecordInfo
	}

	raw1 := doc.RecordInfo[0]
	fields := make([]Field, 0, len(raw1.Fields))

	for _, xf := range raw1.Fields {
		name, ok := xf.attr("name")
		if !ok {
			return RecordInfo{}, errs.ErrFieldMissingName
		}

		typeName, ok := xf.attr("type")
		if !ok {
			return RecordInfo{}, errs.ErrFieldMissingType
		}

		t, ok := format.ParseType(typeName)
		if !ok {
			return RecordInfo{}, fmt.Errorf("%w: %q", errs.ErrUnknownFieldType, typeName)
		}

		field := Field{Name: name, Type: t}

		if sizeStr, ok := xf.attr("size"); ok {
			n, err := strconv.Atoi(sizeStr)
			if err != nil {
				return RecordInfo{}, fmt.Errorf("%w: size=%q", errs.ErrFieldAttrNotInt, sizeStr)
			}

			field.Size = n
			field.HasSize = true
		}

		if scaleStr, ok := xf.attr("scale"); ok {
			n, err := strconv.Atoi(scaleStr)
			if err != nil {
				return RecordInfo{}, fmt.Errorf("%w: scale=%q", errs.ErrFieldAttrNotInt, scaleStr)
			}

			field.Scale = n
			field.HasScale = true
		}

		fields = append(fields, field)
	}

	return RecordInfo{Fields: fields}, nil
}

// Encode renders r to the wire form: UTF-16LE XML text with no XML
// declaration, followed by the '\n' '\0' trailer.
func Encode(r RecordInfo) []byte {
	var b strings.Builder

	b.WriteString("<MetaInfo><RecordInfo>")

	for _, f := range r.Fields {
		b.WriteString(`<Field name="`)
		xml.EscapeText(&b, []byte(f.Name)) //nolint:errcheck // strings.Builder never errors
		b.WriteString(`" type="`)
		xml.EscapeText(&b, []byte(f.Type.String()))
		b.WriteString(`"`)

		if f.HasSize {
			fmt.Fprintf(&b, ` size="%d"`, f.Size)
		}

		if f.HasScale {
			fmt.Fprintf(&b, ` scale="%d"`, f.Scale)
		}

		b.WriteString("/>")
	}

	b.WriteString("</RecordInfo></MetaInfo>")
	b.WriteByte('\n')
	b.WriteByte(0)

	units := utf16.Encode([]rune(b.String()))
	out := make([]byte, 0, len(units)*2)

	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}

	return out
}
