// Package parser implements the recursive-descent Maestro block parser:
// outer blocks, nested scalar blocks, and dispatch into either indexed
// block strategy (direct or buffered).
package parser

import (
	"io"

	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/buffer"
	"github.com/schrodinger/maeparser/internal/lexer"
)

// Strategy selects how indexed blocks are parsed: Direct decodes every
// column eagerly, Buffered records token spans and decodes lazily on
// first access.
type Strategy int

const (
	Buffered Strategy = iota
	Direct
)

// Parser reads successive outer blocks from a buffer.Buffer.
type Parser struct {
	buf      *buffer.Buffer
	strategy Strategy
}

// New returns a Parser reading from r in chunks of bufferSize bytes.
func New(r io.Reader, bufferSize int, strategy Strategy) *Parser {
	return &Parser{buf: buffer.New(r, bufferSize), strategy: strategy}
}

// NewFromBytes returns a Parser reading from a fixed in-memory slice.
func NewFromBytes(data []byte, strategy Strategy) *Parser {
	return &Parser{buf: buffer.NewFromBytes(data), strategy: strategy}
}

// NextOuterBlock reads the next top-level block, or returns (nil, nil) at
// EOF. A syntax or value error aborts with no partial block returned.
func (p *Parser) NextOuterBlock() (*block.Block, error) {
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	if p.buf.Current >= p.buf.End && !p.buf.Load() {
		return nil, nil
	}
	name, err := p.outerBlockBeginning()
	if err != nil {
		return nil, err
	}
	return p.blockBody(name)
}

func (p *Parser) outerBlockBeginning() (string, error) {
	name, err := lexer.OuterBlockName(p.buf)
	if err != nil {
		return "", err
	}
	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return "", err
	}
	if !lexer.Character(p.buf, '{') {
		return "", p.syntaxErrorf("Missing '{' for outer block.")
	}
	return name, nil
}

// blockBody parses the scalar section and sub-block/indexed-block body
// of a block whose name and opening '{' have already been consumed.
func (p *Parser) blockBody(name string) (*block.Block, error) {
	b := block.New(name)

	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}
	propertyNames, err := p.properties()
	if err != nil {
		return nil, err
	}
	for _, key := range propertyNames {
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return nil, err
		}
		if err := p.parseScalarValue(b, key); err != nil {
			return nil, err
		}
	}

	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return nil, err
	}

	var indexedMap block.IndexedBlockMap
	var eager *block.EagerBlockMap
	var lazy *block.BufferedBlockMap
	if p.strategy == Direct {
		eager = block.NewEagerBlockMap()
		indexedMap = eager
	} else {
		lazy = block.NewBufferedBlockMap()
		indexedMap = lazy
	}

	for {
		if !p.buf.Load() {
			return nil, p.syntaxErrorf("Missing '}' for block.")
		}
		if p.buf.Byte() == '}' {
			p.buf.Advance()
			break
		}

		subName, rows, err := p.blockBeginning()
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			if p.strategy == Direct {
				ib, err := p.parseDirectIndexedBlock(subName, rows)
				if err != nil {
					return nil, err
				}
				eager.Add(subName, ib)
			} else {
				ibb, err := p.parseBufferedIndexedBlock(subName, rows)
				if err != nil {
					return nil, err
				}
				lazy.AddBuffer(subName, ibb)
			}
		} else {
			sub, err := p.blockBody(subName)
			if err != nil {
				return nil, err
			}
			b.AddBlock(sub)
		}

		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return nil, err
		}
	}

	b.SetIndexedBlockMap(indexedMap)
	return b, nil
}

// parseScalarValue dispatches on key's kind prefix to the matching value
// parser and assigns the result onto b.
func (p *Parser) parseScalarValue(b *block.Block, key string) error {
	switch key[0] {
	case 'b':
		v, err := lexer.ParseBool(p.buf)
		if err != nil {
			return err
		}
		b.SetBoolProperty(key, v)
	case 'i':
		v, err := lexer.ParseInt(p.buf)
		if err != nil {
			return err
		}
		b.SetIntProperty(key, v)
	case 'r':
		v, err := lexer.ParseReal(p.buf)
		if err != nil {
			return err
		}
		b.SetRealProperty(key, v)
	case 's':
		v, err := lexer.ParseString(p.buf)
		if err != nil {
			return err
		}
		b.SetStringProperty(key, v)
	}
	return nil
}

// properties collects property keys up to the ':::' terminator.
func (p *Parser) properties() ([]string, error) {
	var names []string
	for {
		key, ok, err := lexer.PropertyKey(p.buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		names = append(names, key)
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return nil, err
		}
	}
	if err := lexer.TripleColon(p.buf); err != nil {
		return nil, err
	}
	return names, nil
}

// blockBeginning reads a block name and optional '[N]' row count, through
// the opening '{'. rows is 0 for a plain (non-indexed) sub-block.
func (p *Parser) blockBeginning() (name string, rows int, err error) {
	save := p.buf.Current
	if !lexer.AuthorName(p.buf, &save) {
		return "", 0, p.syntaxErrorf("Bad format for block name; must be <author>_<name>.")
	}
	name = string(p.buf.Slice(save, p.buf.Current))

	if err := lexer.SkipWhitespace(p.buf); err != nil {
		return "", 0, err
	}

	if lexer.Character(p.buf, '[') {
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return "", 0, err
		}
		n, err := lexer.ParseInt(p.buf)
		if err != nil {
			return "", 0, err
		}
		rows = n
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return "", 0, err
		}
		if !lexer.Character(p.buf, ']') {
			return "", 0, p.syntaxErrorf("Bad block index; missing ']'.")
		}
		if err := lexer.SkipWhitespace(p.buf); err != nil {
			return "", 0, err
		}
	}

	if !lexer.Character(p.buf, '{') {
		return "", 0, p.syntaxErrorf("Missing '{' for block.")
	}
	return name, rows, nil
}

func (p *Parser) syntaxErrorf(msg string) error {
	return &errs.SyntaxError{Line: p.buf.LineNumber, Column: p.buf.CurrentColumn(), Message: msg}
}
