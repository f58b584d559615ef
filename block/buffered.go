package block

import (
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/schrodinger/maeparser/errs"
	"github.com/schrodinger/maeparser/internal/lexer"
)

// IndexedBlockBuffer is the buffered indexed-block parsing strategy's
// intermediate representation: the byte spans of every token in an
// indexed block's data section, recorded in parse order without being
// interpreted. Materialize decodes them into a real IndexedBlock;
// BufferedBlockMap calls it once, on first access, and then drops the
// buffer.
//
// Each token is a copy of its source span rather than an offset into the
// tokenizer's buffer, since the buffer's backing array may be reused or
// discarded by later reloads long before this block is ever read.
type IndexedBlockBuffer struct {
	name           string
	rows           int
	propertyNames  []string // declared order, including kind prefix
	tokens         [][]byte // row-major: rows * (len(propertyNames)+1) entries
}

// NewIndexedBlockBuffer returns an IndexedBlockBuffer ready to receive
// rows*(len(propertyNames)+1) tokens via AppendToken, in row-major order
// with the leading row-index token first in each row.
func NewIndexedBlockBuffer(name string, rows int, propertyNames []string) *IndexedBlockBuffer {
	return &IndexedBlockBuffer{
		name:          name,
		rows:          rows,
		propertyNames: propertyNames,
		tokens:        make([][]byte, 0, rows*(len(propertyNames)+1)),
	}
}

// AppendToken records the next token span in parse order.
func (b *IndexedBlockBuffer) AppendToken(tok []byte) {
	b.tokens = append(b.tokens, tok)
}

func isNullToken(tok []byte) bool {
	return len(tok) >= 2 && tok[0] == '<' && tok[1] == '>'
}

// Materialize decodes the recorded spans into a fully typed IndexedBlock,
// walking them in column-major order: column c (1-based, with column 0
// being the row index that every row carries and this skips) occupies
// spans {c, c+colCount, c+2*colCount, ...}.
func (b *IndexedBlockBuffer) Materialize() (*IndexedBlock, error) {
	colCount := len(b.propertyNames) + 1
	ib := NewIndexedBlock(b.name, b.rows, append([]string(nil), b.propertyNames...))

	for col, key := range b.propertyNames {
		if len(key) == 0 {
			continue
		}
		switch key[0] {
		case 'b':
			values := make([]bool, b.rows)
			var nulls *roaring.Bitmap
			for row := 0; row < b.rows; row++ {
				tok := b.tokens[row*colCount+col+1]
				if isNullToken(tok) {
					nulls = markNull(nulls, row)
					continue
				}
				switch tok[0] {
				case '1':
					values[row] = true
				case '0':
					values[row] = false
				default:
					return nil, &errs.ValueError{Message: "Bogus bool."}
				}
			}
			ib.SetBoolProperty(key, NewIndexedProperty(values, nulls))
		case 'i':
			values := make([]int, b.rows)
			var nulls *roaring.Bitmap
			for row := 0; row < b.rows; row++ {
				tok := b.tokens[row*colCount+col+1]
				if isNullToken(tok) {
					nulls = markNull(nulls, row)
					continue
				}
				v, err := simpleStrtol(tok)
				if err != nil {
					return nil, err
				}
				values[row] = v
			}
			ib.SetIntProperty(key, NewIndexedProperty(values, nulls))
		case 'r':
			values := make([]float64, b.rows)
			var nulls *roaring.Bitmap
			for row := 0; row < b.rows; row++ {
				tok := b.tokens[row*colCount+col+1]
				if isNullToken(tok) {
					nulls = markNull(nulls, row)
					continue
				}
				v, err := strconv.ParseFloat(string(tok), 64)
				if err != nil {
					return nil, &errs.ValueError{Message: "Bad floating point representation."}
				}
				values[row] = v
			}
			ib.SetRealProperty(key, NewIndexedProperty(values, nulls))
		case 's':
			values := make([]string, b.rows)
			var nulls *roaring.Bitmap
			for row := 0; row < b.rows; row++ {
				tok := b.tokens[row*colCount+col+1]
				if isNullToken(tok) {
					nulls = markNull(nulls, row)
					continue
				}
				if len(tok) > 0 && tok[0] == '"' {
					values[row] = lexer.UnescapeBytes(tok[1 : len(tok)-1])
				} else {
					values[row] = string(tok)
				}
			}
			ib.SetStringProperty(key, NewIndexedProperty(values, nulls))
		}
	}
	return ib, nil
}

func markNull(nulls *roaring.Bitmap, row int) *roaring.Bitmap {
	if nulls == nil {
		nulls = roaring.New()
	}
	nulls.Add(uint32(row))
	return nulls
}

// simpleStrtol parses a decimal integer from a token without handling
// alternate bases; it exists because general-purpose conversion was the
// hot path in the buffered materializer's profile.
func simpleStrtol(tok []byte) (int, error) {
	value := 0
	sign := 1
	for _, c := range tok {
		switch {
		case c >= '0' && c <= '9':
			value = value*10 + int(c-'0')
		case c == '-':
			if sign == -1 || value != 0 {
				return 0, &errs.ValueError{Message: "Unexpected '-' in integer."}
			}
			sign = -1
		default:
			return 0, &errs.ValueError{Message: "Unexpected character in integer."}
		}
	}
	return value * sign, nil
}
