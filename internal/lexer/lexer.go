// Package lexer implements the Maestro tokenizer: whitespace/comment
// skipping, single-character matching, the ':::' separator, and
// property/block name recognition. It runs directly against a
// buffer.Buffer rather than through a generic token stream, dispatching on
// the current byte the way the format's C++ original does.
package lexer

import (
	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/buffer"
)

// SkipWhitespace consumes ' ', '\t', '\r', '\n', and any embedded comments
// of the form '# ... #', until a non-whitespace byte is found or the
// stream is exhausted.
func SkipWhitespace(buf *buffer.Buffer) error {
	for buf.Current < buf.End || buf.Load() {
		switch buf.Byte() {
		case '\n', '\r', ' ', '\t':
			buf.Advance()
		case '#':
			if err := skipComment(buf); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipComment consumes a comment starting at the current '#' through its
// closing '#', inclusive. Newlines inside a comment advance the line
// counter; whether that's correct is a question the format's original
// implementation leaves open, and this tokenizer allows it.
func skipComment(buf *buffer.Buffer) error {
	save := buf.Current
	buf.Advance() // step past the opening '#'
	for buf.Current < buf.End || buf.LoadSave(&save) {
		if buf.Byte() == '#' {
			buf.Advance()
			return nil
		}
		buf.Advance()
	}
	return &errs.SyntaxError{
		Line:    buf.LineNumber,
		Column:  buf.CurrentColumn(),
		Message: "Unterminated comment.",
	}
}

// Character consumes the current byte if it equals c, advancing, and
// returns true; otherwise it leaves the buffer untouched and returns
// false. Callers with an in-flight save point must use CharacterSave
// instead, since matching a single byte may need to refill the buffer.
func Character(buf *buffer.Buffer, c byte) bool {
	return CharacterSave(buf, c, nil)
}

// CharacterSave is Character, but preserves save across any reload the
// match triggers.
func CharacterSave(buf *buffer.Buffer, c byte, save *int) bool {
	if buf.Current >= buf.End && !buf.LoadSave(save) {
		return false
	}
	if buf.Byte() != c {
		return false
	}
	buf.Advance()
	return true
}

// TripleColon consumes exactly three ':' characters or fails.
func TripleColon(buf *buffer.Buffer) error {
	for i := 0; i < 3; i++ {
		if !Character(buf, ':') {
			return &errs.SyntaxError{
				Line:    buf.LineNumber,
				Column:  buf.CurrentColumn(),
				Message: "Bad ':::' token.",
			}
		}
	}
	return nil
}

// PropertyKey recognizes a '(b|i|r|s)_<author>_<name>' property key. It
// returns ok=false (with no error) when the current byte is ':', the
// sentinel that signals the ':::' list terminator. Any other deviation
// from the grammar is a SyntaxError.
func PropertyKey(buf *buffer.Buffer) (key string, ok bool, err error) {
	if !buf.Load() {
		return "", false, &errs.SyntaxError{
			Line:    buf.LineNumber,
			Column:  buf.CurrentColumn(),
			Message: "Missing property key.",
		}
	}

	save := buf.Current
	switch buf.Byte() {
	case 'b', 'i', 'r', 's':
	case ':':
		return "", false, nil
	default:
		return "", false, badPropertyFormat(buf)
	}
	buf.Advance()

	if buf.Current >= buf.End {
		if !buf.LoadSave(&save) {
			return "", false, badPropertyFormat(buf)
		}
	}
	if buf.Byte() != '_' {
		return "", false, badPropertyFormat(buf)
	}
	buf.Advance()

	if !AuthorName(buf, &save) {
		return "", false, badPropertyFormat(buf)
	}
	return string(buf.Slice(save, buf.Current)), true, nil
}

func badPropertyFormat(buf *buffer.Buffer) error {
	return &errs.SyntaxError{
		Line:    buf.LineNumber,
		Column:  buf.CurrentColumn(),
		Message: "Bad format for property; must be (b|i|r|s)_<author>_<name>.",
	}
}

// OuterBlockName recognizes a '(f|p)_<author>_<name>' outer block name. An
// opening '{' with no preceding name yields the empty string.
func OuterBlockName(buf *buffer.Buffer) (string, error) {
	save := buf.Current
	badFormat := func() error {
		return &errs.SyntaxError{
			Line:    buf.LineNumber,
			Column:  buf.CurrentColumn(),
			Message: "Bad format for outer block name; must be (f|p)_<author>_<name>.",
		}
	}

	c := buf.Byte()
	if c == '{' {
		return "", nil
	}
	if c != 'f' && c != 'p' {
		return "", badFormat()
	}
	buf.Advance()

	if !CharacterSave(buf, '_', &save) {
		return "", badFormat()
	}
	if !AuthorName(buf, &save) {
		return "", badFormat()
	}
	return string(buf.Slice(save, buf.Current)), nil
}

// AuthorName scans the shared '<author>_<name>' tail used by both
// property keys and block names: author is the longest run of ASCII
// letters terminated by '_'; name is the longest run of bytes outside
// {space, tab, \r, \n, '{', '['}. Unlike the author segment, ':' is legal
// inside name — only whitespace and the grouping delimiters end it, so a
// key's name may itself contain runs of colons without being confused for
// the ':::' list terminator, which is only ever recognized at the start
// of a fresh property key. It reports whether a non-empty name was found.
func AuthorName(buf *buffer.Buffer, save *int) bool {
	for buf.Current < buf.End || buf.LoadSave(save) {
		c := buf.Byte()
		if c == '_' {
			buf.Advance()
			goto name
		}
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
		buf.Advance()
	}
	return false

name:
	n := 0
	for buf.Current < buf.End || buf.LoadSave(save) {
		switch buf.Byte() {
		case ' ', '\t', '\r', '\n', '{', '[':
			return n > 0
		}
		buf.Advance()
		n++
	}
	return n > 0
}
