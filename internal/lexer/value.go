package lexer

import (
	"strconv"

	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/buffer"
)

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t':
		return true
	}
	return false
}

// ParseInt reads an optionally-signed decimal integer, terminated by
// whitespace or ']' (the latter for indexed-block headers like
// m_atom[123]).
func ParseInt(buf *buffer.Buffer) (int, error) {
	value := 0
	sign := 1

	save := buf.Current
	for buf.Current < buf.End || buf.LoadSave(&save) {
		c := buf.Byte()
		switch {
		case c == ']' || isWhitespace(c):
			if save == buf.Current {
				return 0, &errs.SyntaxError{
					Line: buf.LineNumber, Column: buf.CurrentColumn(),
					Message: "Missing integer.",
				}
			}
			return value * sign, nil
		case c >= '0' && c <= '9':
			value = value*10 + int(c-'0')
		case c == '-':
			if sign == -1 || value != 0 {
				return 0, &errs.SyntaxError{
					Line: buf.LineNumber, Column: buf.CurrentColumn(),
					Message: "Unexpected '-'.",
				}
			}
			sign = -1
		default:
			return 0, &errs.SyntaxError{
				Line: buf.LineNumber, Column: buf.CurrentColumn(),
				Message: "Unexpected character.",
			}
		}
		buf.Advance()
	}
	if save == buf.Current {
		return 0, &errs.SyntaxError{
			Line: buf.LineNumber, Column: buf.CurrentColumn(),
			Message: "Missing integer.",
		}
	}
	return value * sign, nil
}

// ParseReal reads the longest prefix of [-.0-9eE] terminated by
// whitespace, then strictly parses it as an IEEE-754 double.
func ParseReal(buf *buffer.Buffer) (float64, error) {
	save := buf.Current
	for buf.Current < buf.End || buf.LoadSave(&save) {
		switch buf.Byte() {
		case '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'e', 'E':
			buf.Advance()
		case ' ', '\n', '\r', '\t':
			goto done
		default:
			return 0, &errs.SyntaxError{
				Line: buf.LineNumber, Column: buf.CurrentColumn(),
				Message: "Unexpected character in real number.",
			}
		}
	}

done:
	if save == buf.Current {
		return 0, &errs.SyntaxError{
			Line: buf.LineNumber, Column: buf.CurrentColumn(),
			Message: "Missing real.",
		}
	}

	literal := buf.Slice(save, buf.Current)
	value, err := strconv.ParseFloat(string(literal), 64)
	if err != nil {
		return 0, &errs.SyntaxError{
			Line: buf.LineNumber, Column: buf.CurrentColumn(),
			Message: "Bad real number.",
		}
	}
	return value, nil
}

// ParseString reads an unquoted run of non-whitespace bytes, or, when the
// current byte is '"', a quoted string with '\' escapes, terminated by an
// unescaped closing quote.
func ParseString(buf *buffer.Buffer) (string, error) {
	save := buf.Current
	if buf.Byte() != '"' {
		for buf.Current < buf.End || buf.LoadSave(&save) {
			if isWhitespace(buf.Byte()) {
				return string(buf.Slice(save, buf.Current)), nil
			}
			buf.Advance()
		}
		return string(buf.Slice(save, buf.Current)), nil
	}

	buf.Advance()
	save = buf.Current
	var raw []byte
	for buf.Current < buf.End || buf.LoadSave(&save) {
		switch buf.Byte() {
		case '"':
			raw = buf.Slice(save, buf.Current)
			buf.Advance()
			return UnescapeBytes(raw), nil
		case '\\':
			buf.Advance()
		}
		buf.Advance()
	}
	return "", &errs.SyntaxError{
		Line: buf.LineNumber, Column: buf.CurrentColumn(),
		Message: "Unterminated quoted string at EOF.",
	}
}

// UnescapeBytes strips the backslash out of every '\x' pair, leaving x in
// place, matching the Maestro escaping rule where '\' only ever
// introduces a following literal byte. It is also used directly by the
// buffered indexed-block materializer, which captures quoted string
// spans without unescaping them during the initial scan.
func UnescapeBytes(s []byte) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		out = append(out, s[i])
	}
	return string(out)
}

// ParseBool reads exactly one of '0' or '1', immediately followed by a
// terminator (whitespace or EOF).
func ParseBool(buf *buffer.Buffer) (bool, error) {
	var value bool
	switch buf.Byte() {
	case '1':
		value = true
	case '0':
		value = false
	default:
		return false, &errs.SyntaxError{
			Line: buf.LineNumber, Column: buf.CurrentColumn(),
			Message: "Unexpected character for boolean value.",
		}
	}
	buf.Advance()

	if buf.Current >= buf.End {
		if !buf.Load() {
			return value, nil
		}
	}

	if isWhitespace(buf.Byte()) {
		return value, nil
	}
	return false, &errs.SyntaxError{
		Line: buf.LineNumber, Column: buf.CurrentColumn(),
		Message: "Unexpected character for boolean value.",
	}
}
