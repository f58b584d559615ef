package parser

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/lexer"
)

// parseDirectIndexedBlock eagerly decodes every column of a declared-N-row
// indexed block into typed columns, peeking for the '<>' undefined marker
// before delegating each cell to the typed value parser.
func (p *Parser) parseDirectIndexedBlock(name string, rows int) (*block.IndexedBlock, error) {
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	propertyNames, err := p.properties()
	if err != nil {
		return nil, err
	}

	bools := make(map[string][]bool)
	ints := make(map[string][]int)
	reals := make(map[string][]float64)
	strs := make(map[string][]string)
	nulls := make(map[string]*roaring.Bitmap)

	for _, key := range propertyNames {
		switch key[0] {
		case 'b':
			bools[key] = make([]bool, rows)
		case 'i':
			ints[key] = make([]int, rows)
		case 'r':
			reals[key] = make([]float64, rows)
		case 's':
			strs[key] = make([]string, rows)
		}
	}

	for row := 0; row < rows; row++ {
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return nil, err
		}
		if _, err := lexer.ParseInt(p.buf); err != nil {
			return nil, err
		}
		for _, key := range propertyNames {
			if err := lexer.SkipWhitespace(p.buf); err != nil {
				return nil, err
			}
			isNull, err := p.peekUndefinedMarker()
			if err != nil {
				return nil, err
			}
			if isNull {
				bm := nulls[key]
				if bm == nil {
					bm = roaring.New()
					nulls[key] = bm
				}
				bm.Add(uint32(row))
				continue
			}
			switch key[0] {
			case 'b':
				v, err := lexer.ParseBool(p.buf)
				if err != nil {
					return nil, err
				}
				bools[key][row] = v
			case 'i':
				v, err := lexer.ParseInt(p.buf)
				if err != nil {
					return nil, err
				}
				ints[key][row] = v
			case 'r':
				v, err := lexer.ParseReal(p.buf)
				if err != nil {
					return nil, err
				}
				reals[key][row] = v
			case 's':
				v, err := lexer.ParseString(p.buf)
				if err != nil {
					return nil, err
				}
				strs[key][row] = v
			}
		}
	}

	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	if err := lexer.TripleColon(p.buf); err != nil {
		return nil, err
	}
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	if !lexer.Character(p.buf, '}') {
		return nil, p.syntaxErrorf("Missing '}' for indexed block.")
	}

	ib := block.NewIndexedBlock(name, rows, propertyNames)
	for key, v := range bools {
		ib.SetBoolProperty(key, block.NewIndexedProperty(v, nulls[key]))
	}
	for key, v := range ints {
		ib.SetIntProperty(key, block.NewIndexedProperty(v, nulls[key]))
	}
	for key, v := range reals {
		ib.SetRealProperty(key, block.NewIndexedProperty(v, nulls[key]))
	}
	for key, v := range strs {
		ib.SetStringProperty(key, block.NewIndexedProperty(v, nulls[key]))
	}
	return ib, nil
}

// peekUndefinedMarker reports whether the upcoming cell is the two-byte
// '<>' undefined marker, consuming it if so. If the current byte is '<'
// but not followed by '>', the buffer is rewound so the caller can parse
// the cell as an ordinary value starting with '<'.
func (p *Parser) peekUndefinedMarker() (bool, error) {
	buf := p.buf
	if buf.Current >= buf.End && !buf.Load() {
		return false, p.syntaxErrorf("Unexpected EOF.")
	}
	if buf.Byte() != '<' {
		return false, nil
	}

	save := buf.Current
	buf.Advance()
	if buf.Current >= buf.End && !buf.LoadSave(&save) {
		return false, p.syntaxErrorf("Unexpected EOF.")
	}
	if buf.Byte() != '>' {
		buf.Current = save
		return false, nil
	}
	buf.Advance()
	return true, nil
}

// parseBufferedIndexedBlock records the byte span of every token in the
// block's data section, in row-major order, without interpreting them.
// Materialization happens later, on first access to the resulting
// IndexedBlockBuffer.
func (p *Parser) parseBufferedIndexedBlock(name string, rows int) (*block.IndexedBlockBuffer, error) {
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	propertyNames, err := p.properties()
	if err != nil {
		return nil, err
	}

	ibb := block.NewIndexedBlockBuffer(name, rows, propertyNames)
	total := rows * (len(propertyNames) + 1)
	for i := 0; i < total; i++ {
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return nil, err
		}
		tok, err := p.scanIndexedToken()
		if err != nil {
			return nil, err
		}
		ibb.AppendToken(tok)
	}

	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	if err := lexer.TripleColon(p.buf); err != nil {
		return nil, err
	}
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	if !lexer.Character(p.buf, '}') {
		return nil, p.syntaxErrorf("Missing closing '}' for indexed block.")
	}
	return ibb, nil
}

// scanIndexedToken captures the byte span of the next token without
// interpreting it: an unquoted token ends at whitespace; a quoted token's
// span includes its surrounding quotes and ends at the first unescaped
// closing quote, using the same escape-skipping rule as the string value
// parser so the two strategies treat backslashes identically.
func (p *Parser) scanIndexedToken() ([]byte, error) {
	buf := p.buf
	save := buf.Current
	if buf.Current >= buf.End && !buf.LoadSave(&save) {
		return nil, p.syntaxErrorf("Unexpected EOF in indexed block values.")
	}

	if buf.Byte() != '"' {
		for buf.Current < buf.End || buf.LoadSave(&save) {
			switch buf.Byte() {
			case ' ', '\t', '\r', '\n':
				return buf.Slice(save, buf.Current), nil
			}
			buf.Advance()
		}
		return buf.Slice(save, buf.Current), nil
	}

	buf.Advance()
	for buf.Current < buf.End || buf.LoadSave(&save) {
		switch buf.Byte() {
		case '"':
			buf.Advance()
			return buf.Slice(save, buf.Current), nil
		case '\\':
			buf.Advance()
		}
		buf.Advance()
	}
	return nil, &errs.SyntaxError{
		Line: buf.LineNumber, Column: buf.CurrentColumn(),
		Message: "Unterminated quoted string at EOF.",
	}
}
