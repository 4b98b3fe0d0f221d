package fieldcodec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yxdbio/yxdb/format"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/wire"
)

func roundTrip(t *testing.T, f schema.Field, v Value) Value {
	t.Helper()

	w := wire.NewWriter()
	require.NoError(t, WriteField(w, f, v))

	width, err := FixedWidth(f)
	require.NoError(t, err)
	require.Equal(t, width, w.Len())

	r := wire.NewReader(bytes.NewReader(w.Bytes()), "field")
	got, err := ReadField(r, f)
	require.NoError(t, err)

	return got
}

func TestFieldCodec_Int32_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeInt32}
	got := roundTrip(t, f, Value{Int64: -12345})
	require.False(t, got.Null)
	require.Equal(t, int64(-12345), got.Int64)
}

func TestFieldCodec_Int32_Null(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeInt32}
	got := roundTrip(t, f, Value{Null: true})
	require.True(t, got.Null)
}

func TestFieldCodec_Double_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeDouble}
	got := roundTrip(t, f, Value{Float64: 3.14159265358979})
	require.InDelta(t, 3.14159265358979, got.Float64, 1e-12)
}

func TestFieldCodec_Float_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeFloat}
	got := roundTrip(t, f, Value{Float64: 2.5})
	require.InDelta(t, 2.5, got.Float64, 1e-6)
}

func TestFieldCodec_Bool_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeBool}

	got := roundTrip(t, f, Value{Bool: true})
	require.True(t, got.Bool)

	got = roundTrip(t, f, Value{Bool: false})
	require.False(t, got.Bool)
	require.False(t, got.Null)

	got = roundTrip(t, f, Value{Null: true})
	require.True(t, got.Null)
}

func TestFieldCodec_String_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeString, Size: 10, HasSize: true}
	got := roundTrip(t, f, Value{Str: "hello"})
	require.Equal(t, "hello", got.Str)
}

func TestFieldCodec_String_Null(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeString, Size: 10, HasSize: true}
	got := roundTrip(t, f, Value{Null: true})
	require.True(t, got.Null)
}

func TestFieldCodec_WString_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeWString, Size: 8, HasSize: true}
	got := roundTrip(t, f, Value{Str: "héllo"})
	require.Equal(t, "héllo", got.Str)
}

func TestFieldCodec_Date_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeDate}
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got := roundTrip(t, f, Value{Time: day})
	require.True(t, got.Time.Equal(day))
}

func TestFieldCodec_DateTime_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeDateTime}
	ts := time.Date(2024, 3, 15, 13, 45, 9, 0, time.UTC)
	got := roundTrip(t, f, Value{Time: ts})
	require.True(t, got.Time.Equal(ts))
}

func TestFieldCodec_FixedDecimal_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeFixedDecimal, Size: 19, HasSize: true, Scale: 2, HasScale: true}
	got := roundTrip(t, f, Value{Str: "123.45"})
	require.Equal(t, "123.45", got.Str)
}

func TestFieldCodec_SpatialObject_RoundTrip(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeSpatialObject}
	payload := bytes.Repeat([]byte{0x7A}, spatialObjectWidth)
	got := roundTrip(t, f, Value{Bytes: payload})
	require.Equal(t, payload, got.Bytes)
}

func TestFieldCodec_VariableTail_ReadOnly(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeVString}

	w := wire.NewWriter()
	tail := []byte("opaque variable payload")
	w.PutUint32(uint32(len(tail)))
	w.PutBytes(tail)

	r := wire.NewReader(bytes.NewReader(w.Bytes()), "field")
	got, err := ReadField(r, f)
	require.NoError(t, err)
	require.Equal(t, tail, got.Bytes)
}

func TestFieldCodec_VariableTail_WriteUnimplemented(t *testing.T) {
	f := schema.Field{Name: "x", Type: format.TypeVString}
	w := wire.NewWriter()
	err := WriteField(w, f, Value{Bytes: []byte("x")})
	require.Error(t, err)
}

func TestFieldCodec_FixedWidth_VariableTypes(t *testing.T) {
	for _, ft := range []format.Type{format.TypeVString, format.TypeVWString, format.TypeBlob} {
		width, err := FixedWidth(schema.Field{Name: "x", Type: ft})
		require.NoError(t, err)
		require.Equal(t, 4, width)
	}
}

func TestFieldCodec_FixedWidth_MissingSize(t *testing.T) {
	_, err := FixedWidth(schema.Field{Name: "x", Type: format.TypeString})
	require.Error(t, err)
}
