package maeparser

import (
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/schrodinger/maeparser/internal/buffer"
	"github.com/schrodinger/maeparser/internal/parser"
)

// options holds the resolved configuration for a Reader or Writer after
// every Option has run.
type options struct {
	bufferSize       int
	strategy         parser.Strategy
	strict           bool
	compressionLevel int
}

func defaultOptions() options {
	return options{
		bufferSize:       buffer.DefaultSize,
		strategy:         parser.Buffered,
		compressionLevel: gzip.DefaultCompression,
	}
}

// Option configures a Reader or Writer.
type Option func(*options) error

// WithBufferSize overrides the refillable byte buffer's window size. The
// default is tuned for throughput; a small size is mainly useful for
// exercising reload-at-boundary behavior in tests.
func WithBufferSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("maeparser: buffer size must be a positive integer")
		}
		o.bufferSize = n
		return nil
	}
}

// WithStrategy selects the indexed-block decoding strategy: parser.Direct
// decodes every column eagerly, parser.Buffered (the default) records
// token spans and decodes a block's columns lazily on first access.
func WithStrategy(s parser.Strategy) Option {
	return func(o *options) error {
		o.strategy = s
		return nil
	}
}

// WithStrictMode enables stricter validation of the version header block
// a Reader expects as the first block of a well-formed file.
func WithStrictMode(strict bool) Option {
	return func(o *options) error {
		o.strict = strict
		return nil
	}
}

// WithCompressionLevel sets the gzip compression level a Writer uses when
// its destination is suffix-selected for compression (".maegz"/".mae.gz").
// Levels follow klauspost/compress/gzip: gzip.NoCompression through
// gzip.BestCompression, gzip.DefaultCompression, or gzip.HuffmanOnly.
func WithCompressionLevel(level int) Option {
	return func(o *options) error {
		if level < gzip.HuffmanOnly || level > gzip.BestCompression {
			return fmt.Errorf("maeparser: invalid gzip compression level %d", level)
		}
		o.compressionLevel = level
		return nil
	}
}
