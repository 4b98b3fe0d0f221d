package yxdbfile

import (
	"fmt"
	"io"

	"github.com/yxdbio/yxdb/block"
	"github.com/yxdbio/yxdb/errs"
	"github.com/yxdbio/yxdb/header"
	"github.com/yxdbio/yxdb/internal/options"
	"github.com/yxdbio/yxdb/record"
	"github.com/yxdbio/yxdb/schema"
	"github.com/yxdbio/yxdb/wire"
)

// defaultRecordsPerBlock is the number of records per logical block
// (spec.md §3, §6.3): the block index gets one entry per such block,
// holding the block-stream offset reached when the block's first record
// was written, i.e. the end of the last flushed miniblock. No miniblock
// is flushed at a block boundary, so that record may lie inside a later
// miniblock, after records of the previous block. Overridable via
// WithRecordsPerBlock.
const defaultRecordsPerBlock = 65536

// Writer assembles a YXDB file. Because the header carries pointers
// (metaInfoLength, recordBlockIndexPos) that are only known once the
// schema and block stream have been produced, Writer always buffers
// the schema-plus-block-stream tail in memory and writes the header
// last (spec.md §9's "buffer the tail" option — uniform for seekable
// and non-seekable sinks alike).
type Writer struct {
	dst    io.Writer
	cfg    *writerConfig
	schema schema.RecordInfo

	tail   *wire.Writer
	blockW *block.Writer
	recEnc *record.Encoder

	nRecs   uint64
	indexAt []uint64
}

// Create returns a Writer for a file described by info. It fails
// immediately if info declares any variable-width field (spec.md §1
// Non-goals: the write path for variable data is unimplemented).
func Create(dst io.Writer, info schema.RecordInfo, opts ...WriterOption) (*Writer, error) {
	cfg := defaultWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if info.HasVariableData() {
		return nil, errs.ErrVariableDataUnimplemented
	}

	if cfg.recordsPerBlock <= 0 {
		cfg.recordsPerBlock = defaultRecordsPerBlock
	}

	tail := wire.NewWriter()
	blockW := block.NewWriter(tail, cfg.miniblockThreshold)

	recEnc, err := record.NewEncoder(blockW, info)
	if err != nil {
		return nil, err
	}

	return &Writer{dst: dst, cfg: cfg, schema: info, tail: tail, blockW: blockW, recEnc: recEnc}, nil
}

// Write encodes and buffers one record.
func (w *Writer) Write(rec record.Record) error {
	if w.nRecs%uint64(w.cfg.recordsPerBlock) == 0 {
		w.indexAt = append(w.indexAt, uint64(len(w.tail.Bytes())))
	}

	if err := w.recEnc.Write(rec); err != nil {
		return err
	}

	w.nRecs++

	return nil
}

// Close flushes the block stream, assembles the schema, block stream
// and block index, computes the header's pointers, and writes the
// complete file to dst in published order: header, schema, block
// stream, block index.
func (w *Writer) Close() error {
	if err := w.blockW.Close(); err != nil {
		return err
	}

	if len(w.indexAt) == 0 {
		// Zero records still produce one empty block (block.Writer's
		// own empty-payload rule), so the index still gets one entry.
		w.indexAt = []uint64{0}
	}

	blockStream := w.tail.Bytes()

	schemaBytes := schema.Encode(w.schema)
	if len(schemaBytes)%2 != 0 {
		return fmt.Errorf("yxdb: encoded schema length %d is not a whole number of UTF-16 code units", len(schemaBytes))
	}

	metaInfoLength := uint32(len(schemaBytes) / 2)
	tailStart := uint64(header.PageSize) + uint64(len(schemaBytes))
	recordBlockIndexPos := tailStart + uint64(len(blockStream))

	absoluteOffsets := make([]uint64, len(w.indexAt))
	for i, rel := range w.indexAt {
		absoluteOffsets[i] = tailStart + rel
	}

	h := header.Header{
		Description:         w.cfg.description,
		FileID:              w.cfg.fileID,
		CreationDate:        w.cfg.now(),
		Flags1:              w.cfg.flags1,
		Flags2:              w.cfg.flags2,
		MetaInfoLength:      metaInfoLength,
		Mystery:             w.cfg.mystery,
		SpatialIndexPos:     w.cfg.spatialIndexPos,
		RecordBlockIndexPos: recordBlockIndexPos,
		NumRecords:          w.nRecs,
		CompressionVersion:  w.cfg.compressionVersion,
	}

	if _, err := w.dst.Write(h.Bytes()); err != nil {
		return err
	}

	if _, err := w.dst.Write(schemaBytes); err != nil {
		return err
	}

	if _, err := w.dst.Write(blockStream); err != nil {
		return err
	}

	idxWriter := wire.NewWriter()
	block.EncodeIndex(idxWriter, block.Index{Offsets: absoluteOffsets})

	_, err := w.dst.Write(idxWriter.Bytes())

	return err
}
