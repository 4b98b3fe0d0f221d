package yxdbfile

import (
	"time"

	"github.com/yxdbio/yxdb/block"
	"github.com/yxdbio/yxdb/header"
	"github.com/yxdbio/yxdb/internal/options"
	"github.com/yxdbio/yxdb/internal/pool"
)

type readerConfig struct {
	strictNumRecords     bool
	decompressBufferSize int
}

func defaultReaderConfig() *readerConfig {
	return &readerConfig{
		decompressBufferSize: pool.DecompressBufferSize,
	}
}

// ReaderOption configures a Reader at Open time.
type ReaderOption = options.Option[*readerConfig]

// WithStrictNumRecords enables comparing the header's advisory
// NumRecords against the count actually decoded; see Reader.Validate.
func WithStrictNumRecords() ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.strictNumRecords = true
	})
}

// WithDecompressBufferSize overrides the scratch buffer size a
// compressed miniblock is decompressed into (format default:
// pool.DecompressBufferSize, 256KiB). Raise it only if a producer is
// known to write miniblocks whose decompressed form exceeds the
// default.
func WithDecompressBufferSize(n int) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.decompressBufferSize = n
	})
}

type writerConfig struct {
	description        string
	flags1, flags2     uint32
	mystery            uint32
	compressionVersion uint32
	spatialIndexPos    uint64
	fileID             uint32
	now                func() time.Time
	recordsPerBlock    int
	miniblockThreshold int
}

func defaultWriterConfig() *writerConfig {
	return &writerConfig{
		compressionVersion: 1,
		fileID:             header.FileIDWithoutSpatialIndex,
		now:                time.Now,
		recordsPerBlock:    defaultRecordsPerBlock,
		miniblockThreshold: block.DefaultMiniblockThreshold,
	}
}

// WriterOption configures a Writer at Create time.
type WriterOption = options.Option[*writerConfig]

// WithDescription sets the header's description text (truncated to 64
// bytes on encode).
func WithDescription(desc string) WriterOption {
	return options.NoError(func(c *writerConfig) { c.description = desc })
}

// WithFlags sets the header's opaque flags1/flags2 words.
func WithFlags(flags1, flags2 uint32) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.flags1 = flags1
		c.flags2 = flags2
	})
}

// WithMystery sets the header's preserved-but-unexplained mystery word.
func WithMystery(m uint32) WriterOption {
	return options.NoError(func(c *writerConfig) { c.mystery = m })
}

// WithCompressionVersion overrides the default compressionVersion (1).
func WithCompressionVersion(v uint32) WriterOption {
	return options.NoError(func(c *writerConfig) { c.compressionVersion = v })
}

// WithSpatialIndex marks the file as carrying a spatial index and sets
// its offset. Only the offset pointer is preserved; this module does
// not encode spatial index content (spec.md §1 Non-goals).
func WithSpatialIndex(pos uint64) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.spatialIndexPos = pos
		c.fileID = header.FileIDWithSpatialIndex
	})
}

// WithClock overrides the source of the header's creationDate, for
// deterministic tests.
func WithClock(now func() time.Time) WriterOption {
	return options.NoError(func(c *writerConfig) { c.now = now })
}

// WithRecordsPerBlock overrides the number of records between
// successive block-index entries (format default: 65536, spec.md §3).
// A smaller value gives a larger index; it changes no byte layout, only
// how often an offset is captured (see defaultRecordsPerBlock for what
// each offset marks).
func WithRecordsPerBlock(n int) WriterOption {
	return options.NoError(func(c *writerConfig) { c.recordsPerBlock = n })
}

// WithMiniblockThreshold overrides the encode-side byte threshold at
// which the block writer splits off a new miniblock (format default:
// block.DefaultMiniblockThreshold, 64KiB). Smaller miniblocks give the
// reader tighter memory bounds at the cost of compression ratio.
func WithMiniblockThreshold(n int) WriterOption {
	return options.NoError(func(c *writerConfig) { c.miniblockThreshold = n })
}
