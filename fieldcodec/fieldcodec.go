// Package fieldcodec is the field-codec collaborator the record codec
// depends on (spec.md §6.2): for every scalar Field kind it knows the
// fixed-portion byte width, how to read that portion into a Value, how
// to write a Value back out, and — for the three variable-width kinds
// — how to read (never write) the opaque variable-data tail that
// follows the fixed portion.
package fieldcodec

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/format"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/wire"
)

// Value is a discriminated union holding one field's decoded content.
// Exactly one of the typed members is meaningful for a given field's
// Type; Null, when true, means the other members carry no data.
type Value struct {
	Null    bool
	Bool    bool
	Int64   int64
	Float64 float64
	Str     string
	Bytes   []byte
	Time    time.Time
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"

	dateWidth     = len(dateLayout) + 1
	dateTimeWidth = len(dateTimeLayout) + 1

	// spatialObjectWidth mirrors spatialIndexRecordBlockSize (spec.md §3).
	spatialObjectWidth = 32

	nullFlagByte    = byte(1)
	notNullFlagByte = byte(0)
)

// FixedWidth returns the byte width of f's fixed portion. Variable
// fields (V_String, V_WString, Blob) report the width of their
// tail-length descriptor only (4 bytes); the tail itself is consumed
// separately by ReadField.
func FixedWidth(f schema.Field) (int, error) {
	switch f.Type {
	case format.TypeBool:
		return 1, nil
	case format.TypeByte:
		return 2, nil
	case format.TypeInt16:
		return 3, nil
	case format.TypeInt32, format.TypeFloat:
		return 5, nil
	case format.TypeInt64, format.TypeDouble:
		return 9, nil
	case format.TypeDate:
		return dateWidth, nil
	case format.TypeDateTime:
		return dateTimeWidth, nil
	case format.TypeSpatialObject:
		return spatialObjectWidth, nil
	case format.TypeString:
		if !f.HasSize {
			return 0, fmt.Errorf("%w: String field %q has no size", errs.ErrFieldAttrNotInt, f.Name)
		}

		return f.Size + 1, nil
	case format.TypeWString:
		if !f.HasSize {
			return 0, fmt.Errorf("%w: WString field %q has no size", errs.ErrFieldAttrNotInt, f.Name)
		}

		return f.Size*2 + 1, nil
	case format.TypeFixedDecimal:
		if !f.HasSize {
			return 0, fmt.Errorf("%w: FixedDecimal field %q has no size", errs.ErrFieldAttrNotInt, f.Name)
		}

		return f.Size + 1, nil
	case format.TypeVString, format.TypeVWString, format.TypeBlob:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %s", errs.ErrUnknownFieldType, f.Type)
	}
}

// ReadField reads one field's value from r, including the opaque
// variable-data tail for variable-width fields.
func ReadField(r *wire.Reader, f schema.Field) (Value, error) {
	switch f.Type {
	case format.TypeBool:
		return readBool(r)
	case format.TypeByte:
		return readIntN(r, 1)
	case format.TypeInt16:
		return readIntN(r, 2)
	case format.TypeInt32:
		return readIntN(r, 4)
	case format.TypeInt64:
		return readIntN(r, 8)
	case format.TypeFloat:
		return readFloatN(r, 4)
	case format.TypeDouble:
		return readFloatN(r, 8)
	case format.TypeFixedDecimal:
		return readFixedText(r, f.Size)
	case format.TypeString:
		return readFixedText(r, f.Size)
	case format.TypeWString:
		return readWString(r, f.Size)
	case format.TypeDate:
		return readFixedDate(r, dateLayout, len(dateLayout))
	case format.TypeDateTime:
		return readFixedDate(r, dateTimeLayout, len(dateTimeLayout))
	case format.TypeSpatialObject:
		b, err := r.Bytes(spatialObjectWidth)
		if err != nil {
			return Value{}, err
		}

		return Value{Bytes: b}, nil
	case format.TypeVString, format.TypeVWString, format.TypeBlob:
		return readVariableTail(r)
	default:
		return Value{}, fmt.Errorf("%w: %s", errs.ErrUnknownFieldType, f.Type)
	}
}

// WriteField writes v's fixed portion for field f. Variable-width
// fields are not supported on the write path (spec.md §1 Non-goals);
// callers must reject such schemas before calling WriteField.
func WriteField(w *wire.Writer, f schema.Field, v Value) error {
	switch f.Type {
	case format.TypeBool:
		return writeBool(w, v)
	case format.TypeByte:
		return writeIntN(w, v, 1)
	case format.TypeInt16:
		return writeIntN(w, v, 2)
	case format.TypeInt32:
		return writeIntN(w, v, 4)
	case format.TypeInt64:
		return writeIntN(w, v, 8)
	case format.TypeFloat:
		return writeFloatN(w, v, 4)
	case format.TypeDouble:
		return writeFloatN(w, v, 8)
	case format.TypeFixedDecimal, format.TypeString:
		return writeFixedText(w, v, f.Size)
	case format.TypeWString:
		return writeWString(w, v, f.Size)
	case format.TypeDate:
		return writeFixedDate(w, v, dateLayout, len(dateLayout))
	case format.TypeDateTime:
		return writeFixedDate(w, v, dateTimeLayout, len(dateTimeLayout))
	case format.TypeSpatialObject:
		b := make([]byte, spatialObjectWidth)
		copy(b, v.Bytes)
		w.PutBytes(b)

		return nil
	case format.TypeVString, format.TypeVWString, format.TypeBlob:
		return errs.ErrVariableDataUnimplemented
	default:
		return fmt.Errorf("%w: %s", errs.ErrUnknownFieldType, f.Type)
	}
}

func readBool(r *wire.Reader) (Value, error) {
	b, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	switch b {
	case 0:
		return Value{Bool: false}, nil
	case 1:
		return Value{Bool: true}, nil
	default:
		return Value{Null: true}, nil
	}
}

func writeBool(w *wire.Writer, v Value) error {
	if v.Null {
		w.PutUint8(2)
		return nil
	}

	if v.Bool {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}

	return nil
}

func readIntN(r *wire.Reader, n int) (Value, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return Value{}, err
	}

	flag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	if flag != notNullFlagByte {
		return Value{Null: true}, nil
	}

	buf := make([]byte, 8)
	copy(buf, b)

	v := int64(binary.LittleEndian.Uint64(buf))
	if n > 1 && n < 8 {
		// Int16/Int32 are signed: sign-extend. Byte (n == 1) stays unsigned.
		shift := uint(64 - 8*n)
		v = v << shift >> shift
	}

	return Value{Int64: v}, nil
}

func writeIntN(w *wire.Writer, v Value, n int) error {
	if v.Null {
		w.PutBytes(make([]byte, n))
		w.PutUint8(nullFlagByte)

		return nil
	}

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v.Int64))
	w.PutBytes(buf[:n])
	w.PutUint8(notNullFlagByte)

	return nil
}

func readFloatN(r *wire.Reader, n int) (Value, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return Value{}, err
	}

	flag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	if flag != notNullFlagByte {
		return Value{Null: true}, nil
	}

	if n == 4 {
		bits := binary.LittleEndian.Uint32(b)

		return Value{Float64: float64(float32FromBits(bits))}, nil
	}

	bits := binary.LittleEndian.Uint64(b)

	return Value{Float64: float64FromBits(bits)}, nil
}

func writeFloatN(w *wire.Writer, v Value, n int) error {
	if v.Null {
		w.PutBytes(make([]byte, n))
		w.PutUint8(nullFlagByte)

		return nil
	}

	if n == 4 {
		w.PutUint32(float32Bits(float32(v.Float64)))
	} else {
		w.PutUint64(float64Bits(v.Float64))
	}

	w.PutUint8(notNullFlagByte)

	return nil
}

func readFixedText(r *wire.Reader, size int) (Value, error) {
	b, err := r.Bytes(size)
	if err != nil {
		return Value{}, err
	}

	flag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	if flag != notNullFlagByte {
		return Value{Null: true}, nil
	}

	return Value{Str: strings.TrimRight(string(b), "\x00")}, nil
}

func writeFixedText(w *wire.Writer, v Value, size int) error {
	b := make([]byte, size)

	if v.Null {
		w.PutBytes(b)
		w.PutUint8(nullFlagByte)

		return nil
	}

	copy(b, v.Str)
	w.PutBytes(b)
	w.PutUint8(notNullFlagByte)

	return nil
}

func readWString(r *wire.Reader, size int) (Value, error) {
	b, err := r.Bytes(size * 2)
	if err != nil {
		return Value{}, err
	}

	flag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	if flag != notNullFlagByte {
		return Value{Null: true}, nil
	}

	units := make([]uint16, size)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i : 2*i+2])
	}

	return Value{Str: utf16ToString(units)}, nil
}

func writeWString(w *wire.Writer, v Value, size int) error {
	if v.Null {
		w.PutBytes(make([]byte, size*2))
		w.PutUint8(nullFlagByte)

		return nil
	}

	units := stringToUTF16(v.Str, size)
	for _, u := range units {
		w.PutUint16(u)
	}

	w.PutUint8(notNullFlagByte)

	return nil
}

func readFixedDate(r *wire.Reader, layout string, width int) (Value, error) {
	b, err := r.Bytes(width)
	if err != nil {
		return Value{}, err
	}

	flag, err := r.Uint8()
	if err != nil {
		return Value{}, err
	}

	if flag != notNullFlagByte {
		return Value{Null: true}, nil
	}

	t, err := time.Parse(layout, string(b))
	if err != nil {
		return Value{}, fmt.Errorf("yxdb: malformed date %q: %w", string(b), err)
	}

	return Value{Time: t}, nil
}

func writeFixedDate(w *wire.Writer, v Value, layout string, width int) error {
	if v.Null {
		w.PutBytes(make([]byte, width))
		w.PutUint8(nullFlagByte)

		return nil
	}

	s := v.Time.Format(layout)
	b := make([]byte, width)
	copy(b, s)
	w.PutBytes(b)
	w.PutUint8(notNullFlagByte)

	return nil
}

func readVariableTail(r *wire.Reader) (Value, error) {
	n, err := r.Uint32()
	if err != nil {
		return Value{}, err
	}

	tail, err := r.Bytes(int(n))
	if err != nil {
		return Value{}, err
	}

	return Value{Bytes: tail}, nil
}
