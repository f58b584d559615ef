package maeparser

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/constants"
	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/parser"
)

// Reader reads successive outer blocks from a .mae (or .maegz/.mae.gz)
// source, the way the original Reader.hpp/Reader.cpp wraps MaeParser.
type Reader struct {
	p       *parser.Parser
	closer  io.Closer
	strict  bool
	checked bool
}

// NewReader opens path and returns a Reader over it. Files ending in
// ".maegz" or ".mae.gz" are transparently gzip-decompressed.
func NewReader(path string, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, wrapf("opening "+path, &errs.IoError{Path: path, Err: err})
	}

	var r io.Reader = f
	var closer io.Closer = f
	if hasGzipSuffix(path) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, wrapf("opening gzip stream for "+path, &errs.IoError{Path: path, Err: err})
		}
		r = gz
		closer = multiCloser{gz, f}
	}

	return &Reader{
		p:      parser.New(r, o.bufferSize, o.strategy),
		closer: closer,
		strict: o.strict,
	}, nil
}

// NewReaderFromStream returns a Reader over an already-open stream. The
// caller remains responsible for closing r; Close on the returned Reader
// is a no-op.
func NewReaderFromStream(r io.Reader, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o) //nolint:errcheck // an Option that fails leaves its setting at the default; the error is dropped
	}
	return &Reader{p: parser.New(r, o.bufferSize, o.strategy), strict: o.strict}
}

// Next returns the next outer block, or (nil, nil) at a clean EOF. In
// strict mode, the first call additionally requires that block to carry
// a s_m_m2io_version string property, matching the header every Writer
// emits on construction.
func (r *Reader) Next() (*block.Block, error) {
	b, err := r.p.NextOuterBlock()
	if err != nil {
		return nil, wrapf("reading next block", err)
	}
	if !r.checked {
		r.checked = true
		if r.strict && b != nil && !b.HasStringProperty(constants.FormatVersion) {
			return nil, wrapf("reading next block", &errs.StateError{
				Message: "first block is missing the s_m_m2io_version header property",
			})
		}
	}
	return b, nil
}

// NextWithName skips blocks until one named name is found (or EOF),
// preserving the order in which blocks were written — it never looks
// ahead past the returned block.
func (r *Reader) NextWithName(name string) (*block.Block, error) {
	for {
		b, err := r.Next()
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, nil
		}
		if b.Name() == name {
			return b, nil
		}
	}
}

// Close releases the underlying file (and gzip stream, if any). It is a
// no-op for readers constructed with NewReaderFromStream.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func hasGzipSuffix(path string) bool {
	return strings.HasSuffix(path, ".maegz") || strings.HasSuffix(path, ".mae.gz")
}

// multiCloser closes each wrapped closer in order, returning the first
// error encountered, matching the layered ownership of a gzip.Reader
// sitting in front of the *os.File it reads from.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
