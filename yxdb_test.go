package yxdb

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yxdbio/yxdb/format"
)

func TestOpenCreate_RoundTrip(t *testing.T) {
	info := RecordInfo{Fields: []Field{{Name: "n", Type: format.TypeInt32}}}

	var buf bytes.Buffer
	w, err := Create(&buf, info, WithDescription("example"))
	require.NoError(t, err)

	for _, v := range []int64{7, 8, 9} {
		require.NoError(t, w.Write(Record{Values: []FieldValue{{Int64: v}}}))
	}
	require.NoError(t, w.Close())

	f, err := Open(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "example", f.Header.Description)

	var got []int64
	for {
		rec, err := f.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec.Values[0].Int64)
	}
	require.Equal(t, []int64{7, 8, 9}, got)
}
