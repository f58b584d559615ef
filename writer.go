package maeparser

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/constants"
	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/formatter"
)

// Writer serializes blocks to a .mae (or .maegz/.mae.gz) destination. On
// construction it writes the one-line anonymous header block that Maestro
// tools expect to find first, mirroring Writer::write_opening_block.
type Writer struct {
	f    *formatter.Formatter
	buf  *bufio.Writer
	gz   *gzip.Writer
	file io.Closer
}

// NewWriter creates or truncates path and returns a Writer over it. A
// ".maegz"/".mae.gz" suffix selects gzip compression at the configured
// level (WithCompressionLevel, default gzip.DefaultCompression).
func NewWriter(path string, opts ...Option) (*Writer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, wrapf("creating "+path, &errs.IoError{Path: path, Err: err})
	}

	w := &Writer{file: file}
	var dest io.Writer = file
	if hasGzipSuffix(path) {
		gz, err := gzip.NewWriterLevel(file, o.compressionLevel)
		if err != nil {
			file.Close()
			return nil, wrapf("opening gzip stream for "+path, err)
		}
		w.gz = gz
		dest = gz
	}
	w.buf = bufio.NewWriter(dest)
	w.f = formatter.New(w.buf)

	if err := w.writeOpeningBlock(); err != nil {
		w.file.Close()
		return nil, err
	}
	return w, nil
}

// NewWriterToStream wraps an already-open stream. The caller remains
// responsible for closing dest; Close on the returned Writer only flushes.
func NewWriterToStream(dest io.Writer) (*Writer, error) {
	w := &Writer{buf: bufio.NewWriter(dest)}
	w.f = formatter.New(w.buf)
	if err := w.writeOpeningBlock(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeOpeningBlock() error {
	b := block.New("")
	b.SetStringProperty(constants.FormatVersion, constants.CurrentVersion)
	return w.Write(b)
}

// Write appends the serialized form of b.
func (w *Writer) Write(b *block.Block) error {
	if err := w.f.Write(b); err != nil {
		return wrapf("writing block", err)
	}
	return nil
}

// Close flushes any buffered and gzip-compressed output and closes the
// underlying file, the Go analogue of the original Writer's
// flush-on-destruction behavior. It is safe to call exactly once.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return wrapf("flushing output", err)
	}
	if w.gz != nil {
		if err := w.gz.Close(); err != nil {
			return wrapf("closing gzip stream", err)
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return wrapf("closing output file", err)
		}
	}
	return nil
}
