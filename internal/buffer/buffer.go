// Package buffer implements the refillable byte window that the tokenizer
// scans directly. It owns a sliding slice over an input stream, exposes a
// current/end cursor pair, and tracks line and column for diagnostics.
package buffer

import (
	"fmt"
	"io"
)

// DefaultSize is the window size used when none is supplied.
const DefaultSize = 128 * 1024

// Buffer is a sliding window over an io.Reader (or a fixed in-memory byte
// slice, when constructed with NewFromBytes). Current and End are byte
// offsets into Window; callers index Window[Current] directly in
// character-dispatch loops rather than calling an accessor.
type Buffer struct {
	r      io.Reader
	Window []byte
	Current int
	End     int

	size int

	LineNumber     int
	startingColumn int

	// Err holds the last I/O error seen by LoadSave, distinguishing a
	// genuine read failure from ordinary EOF (Load/LoadSave return false
	// for both; callers that care check Err afterward).
	Err error
}

// New returns a Buffer that loads from r in chunks of size bytes
// (DefaultSize if size is 0).
func New(r io.Reader, size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Buffer{
		r:              r,
		Window:         make([]byte, size),
		LineNumber:     1,
		startingColumn: 1,
		size:           size,
	}
}

// NewFromBytes returns a Buffer over a fixed byte slice. Load always
// reports false once the slice has been fully consumed.
func NewFromBytes(data []byte) *Buffer {
	b := &Buffer{
		Window:         data,
		Current:        0,
		End:            len(data),
		LineNumber:     1,
		startingColumn: 1,
	}
	return b
}

// Load ensures at least one more byte is available at Current, refilling
// from the underlying reader if necessary. It returns false at EOF.
func (b *Buffer) Load() bool {
	return b.LoadSave(nil)
}

// LoadSave is Load, but guarantees that Window[*save:End) survives the
// reload (copied to the front of the new window) and updates *save to
// its new index, so that a token whose start is *save remains valid.
// Pass nil when there is no in-flight token to preserve.
//
// Every routine that may trigger a reload while holding a byte index
// into Window MUST pass that index's address as save, or re-derive the
// index from Current afterward — otherwise the buffer may invalidate it
// on reload.
func (b *Buffer) LoadSave(save *int) bool {
	if b.Current < b.End {
		return true
	}
	if b.r == nil {
		return false
	}

	savedChars := 0
	newSize := b.size
	if save != nil {
		savedChars = b.End - *save
		if savedChars > newSize/2 {
			newSize = savedChars * 2
		}
	}

	window := b.Window
	if len(window) < newSize {
		window = make([]byte, newSize)
	}
	if savedChars > 0 {
		copy(window, b.Window[*save:b.End])
	}

	n, err := io.ReadFull(b.r, window[savedChars:])
	// ReadFull returns ErrUnexpectedEOF when it reads a partial final
	// chunk; that's expected here, the buffer is simply not full.
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		b.Err = err
		return false
	}
	if n == 0 {
		return false
	}

	b.startingColumn = b.Column(b.Current)
	b.Window = window
	b.Current = savedChars
	b.End = savedChars + n
	if save != nil {
		*save = 0
	}
	return true
}

// Column returns the 1-based column of the byte at index i in the
// current window.
func (b *Buffer) Column(i int) int {
	save := i
	for i > 0 {
		i--
		if b.Window[i] == '\n' {
			return save - i
		}
	}
	return (save - i) + b.startingColumn
}

// CurrentColumn returns the 1-based column of the byte about to be read.
func (b *Buffer) CurrentColumn() int {
	return b.Column(b.Current)
}

// Byte returns the byte at Current without bounds checking; callers must
// have already established Current < End (typically via Load/LoadSave).
func (b *Buffer) Byte() byte {
	return b.Window[b.Current]
}

// Advance consumes the current byte, updating the line number.
func (b *Buffer) Advance() {
	if b.Window[b.Current] == '\n' {
		b.LineNumber++
	}
	b.Current++
}

// Slice returns a copy of Window[start:end]. Materialized buffered-block
// spans must copy out of the window this way before the next reload,
// since reloads may reuse or discard the backing array.
func (b *Buffer) Slice(start, end int) []byte {
	out := make([]byte, end-start)
	copy(out, b.Window[start:end])
	return out
}

func (b *Buffer) String() string {
	n := len(b.Window)
	if n > 10 {
		n = 10
	}
	return fmt.Sprintf("Buffer(%s...)", string(b.Window[:n]))
}
