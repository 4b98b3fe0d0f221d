package block

import "github.com/yxdbio/yxdb/wire"

// Index is the trailing block index: a dense array of u64 byte
// offsets, each marking where one write-side block flush began.
type Index struct {
	Offsets []uint64
}

// DecodeIndex reads a u32le count N followed by N little-endian u64
// offsets from r (typically the remainder of the file after the block
// stream, per spec.md §4.6).
func DecodeIndex(r *wire.Reader) (Index, error) {
	n, err := r.Uint32()
	if err != nil {
		return Index{}, err
	}

	offsets := make([]uint64, n)
	for i := range offsets {
		v, err := r.Uint64()
		if err != nil {
			return Index{}, err
		}

		offsets[i] = v
	}

	return Index{Offsets: offsets}, nil
}

// EncodeIndex appends idx to w in the same layout DecodeIndex expects.
func EncodeIndex(w *wire.Writer, idx Index) {
	w.PutUint32(uint32(len(idx.Offsets)))
	for _, off := range idx.Offsets {
		w.PutUint64(off)
	}
}
