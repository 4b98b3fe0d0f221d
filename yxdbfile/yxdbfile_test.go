package yxdbfile

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yxdbio/yxdb/format"
	"github.com/yxdbio/yxdb/header"
	"github.com/yxdbio/yxdb/record"
	"github.com/yxdbio/yxdb/schema"
)

func intSchema(name string) schema.RecordInfo {
	return schema.RecordInfo{Fields: []schema.Field{{Name: name, Type: format.TypeInt32}}}
}

func TestWriter_Reader_EndToEnd_LiteralScenario(t *testing.T) {
	info := intSchema("x")
	fixedClock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	w, err := Create(&buf, info,
		WithDescription("t"),
		WithClock(func() time.Time { return fixedClock }),
	)
	require.NoError(t, err)

	for _, v := range []int64{1, 2, 3} {
		require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: v}}}))
	}
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Equal(t, "t", r.Header.Description)
	require.Equal(t, uint32(header.FileIDWithoutSpatialIndex), r.Header.FileID)
	require.Equal(t, info, r.Schema)

	var got []int64
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec.Values[0].Int64)
	}
	require.Equal(t, []int64{1, 2, 3}, got)

	idx, err := r.ReadBlockIndex()
	require.NoError(t, err)
	require.Len(t, idx.Offsets, 1)
	require.Equal(t, header.PageSize+len(schema.Encode(info)), int(idx.Offsets[0]))
}

func TestWriter_Reader_EmptyRecordStream(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)

	idx, err := r.ReadBlockIndex()
	require.NoError(t, err)
	require.Len(t, idx.Offsets, 1)
}

func TestWriter_RejectsVariableSchema(t *testing.T) {
	info := schema.RecordInfo{Fields: []schema.Field{{Name: "x", Type: format.TypeVString}}}
	var buf bytes.Buffer

	_, err := Create(&buf, info)
	require.Error(t, err)
}

func TestReader_Validate_RecordCountMismatch(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info)
	require.NoError(t, err)
	require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: 1}}}))
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()), WithStrictNumRecords())
	require.NoError(t, err)

	// Stop before draining the stream: Validate should report the
	// mismatch against the header's advisory NumRecords.
	require.Error(t, r.Validate())

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
	require.NoError(t, r.Validate())
}

func TestWriter_Reader_ManyRecords_MultiMiniblock(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info)
	require.NoError(t, err)

	const n = 50000
	for i := 0; i < n; i++ {
		require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: int64(i)}}}))
	}
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	count := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, int64(count), rec.Values[0].Int64)
		count++
	}
	require.Equal(t, n, count)
}

func TestWriter_Reader_WithRecordsPerBlock(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info, WithRecordsPerBlock(10))
	require.NoError(t, err)

	const n = 101
	for i := 0; i < n; i++ {
		require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: int64(i)}}}))
	}
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	count := 0
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		count++
	}
	require.Equal(t, n, count)

	idx, err := r.ReadBlockIndex()
	require.NoError(t, err)
	// ceil(101/10) == 11 block-start offsets.
	require.Len(t, idx.Offsets, 11)
}

func TestWriter_Reader_WithMiniblockThreshold(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info, WithMiniblockThreshold(32))
	require.NoError(t, err)

	const n = 500
	for i := 0; i < n; i++ {
		require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: int64(i)}}}))
	}
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	count := 0
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, int64(count), rec.Values[0].Int64)
		count++
	}
	require.Equal(t, n, count)
}

func TestReader_WithDecompressBufferSize(t *testing.T) {
	info := intSchema("x")

	var buf bytes.Buffer
	w, err := Create(&buf, info)
	require.NoError(t, err)
	for _, v := range []int64{1, 2, 3} {
		require.NoError(t, w.Write(record.Record{Values: []record.FieldValue{{Int64: v}}}))
	}
	require.NoError(t, w.Close())

	r, err := Open(bytes.NewReader(buf.Bytes()), WithDecompressBufferSize(4096))
	require.NoError(t, err)

	var got []int64
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec.Values[0].Int64)
	}
	require.Equal(t, []int64{1, 2, 3}, got)
}

func TestFingerprint_DetectsDifference(t *testing.T) {
	a, err := Fingerprint(bytes.NewReader([]byte("hello")))
	require.NoError(t, err)

	b, err := Fingerprint(bytes.NewReader([]byte("hellp")))
	require.NoError(t, err)

	require.NotEqual(t, a, b)

	c, err := Fingerprint(bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	require.Equal(t, a, c)
}
