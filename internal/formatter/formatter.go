// Package formatter serializes a block.Block back into Maestro's textual
// grammar: two-space indentation, kind-ordered scalar properties, indexed
// blocks with their row-index column, and the same quoting rule the
// tokenizer uses in reverse.
package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/schrodinger/maeparser/block"
)

const indentUnit = "  "

// Formatter writes blocks to an underlying stream in Maestro's format.
type Formatter struct {
	w     io.Writer
	depth int
}

// New returns a Formatter that writes to w.
func New(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Write serializes b as an outer block, followed by a blank line.
func (f *Formatter) Write(b *block.Block) error {
	if err := f.writeBlock(b); err != nil {
		return err
	}
	return f.writeString("\n")
}

func (f *Formatter) writeBlock(b *block.Block) error {
	if err := f.writeIndent(); err != nil {
		return err
	}
	header := "{\n"
	if b.Name() != "" {
		header = b.Name() + " {\n"
	}
	if err := f.writeString(header); err != nil {
		return err
	}

	f.depth++

	boolNames := sortedNames(b.BoolPropertyNames())
	realNames := sortedNames(b.RealPropertyNames())
	intNames := sortedNames(b.IntPropertyNames())
	strNames := sortedNames(b.StringPropertyNames())
	total := len(boolNames) + len(realNames) + len(intNames) + len(strNames)

	if total > 0 {
		for _, name := range boolNames {
			if err := f.writeIndentedLine(name); err != nil {
				return err
			}
		}
		for _, name := range realNames {
			if err := f.writeIndentedLine(name); err != nil {
				return err
			}
		}
		for _, name := range intNames {
			if err := f.writeIndentedLine(name); err != nil {
				return err
			}
		}
		for _, name := range strNames {
			if err := f.writeIndentedLine(name); err != nil {
				return err
			}
		}
	}
	// The parser always expects the ':::' separator, even when no scalar
	// property names precede it.
	if err := f.writeIndentedLine(":::"); err != nil {
		return err
	}
	if total > 0 {
		for _, name := range boolNames {
			v, err := b.GetBoolProperty(name)
			if err != nil {
				return err
			}
			if err := f.writeIndentedLine(formatBool(v)); err != nil {
				return err
			}
		}
		for _, name := range realNames {
			v, err := b.GetRealProperty(name)
			if err != nil {
				return err
			}
			if err := f.writeIndentedLine(formatReal(v)); err != nil {
				return err
			}
		}
		for _, name := range intNames {
			v, err := b.GetIntProperty(name)
			if err != nil {
				return err
			}
			if err := f.writeIndentedLine(fmt.Sprintf("%d", v)); err != nil {
				return err
			}
		}
		for _, name := range strNames {
			v, err := b.GetStringProperty(name)
			if err != nil {
				return err
			}
			if err := f.writeIndentedLine(EscapeString(v)); err != nil {
				return err
			}
		}
	}

	for _, name := range b.IndexedBlockNames() {
		ib, err := b.GetIndexedBlock(name)
		if err != nil {
			return err
		}
		if err := f.writeIndexedBlock(ib); err != nil {
			return err
		}
	}

	for _, name := range b.BlockNames() {
		sub, err := b.GetBlock(name)
		if err != nil {
			return err
		}
		if err := f.writeBlock(sub); err != nil {
			return err
		}
	}

	f.depth--
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.writeString("}\n")
}

func (f *Formatter) writeIndexedBlock(ib *block.IndexedBlock) error {
	if err := f.writeIndent(); err != nil {
		return err
	}
	if err := f.writeString(fmt.Sprintf("%s[%d] {\n", ib.Name(), ib.Rows())); err != nil {
		return err
	}

	f.depth++

	columns := ib.ColumnOrder()
	if len(columns) > 0 {
		if err := f.writeIndentedLine("# First column is Index #"); err != nil {
			return err
		}
	}
	for _, name := range columns {
		if err := f.writeIndentedLine(name); err != nil {
			return err
		}
	}
	if err := f.writeIndentedLine(":::"); err != nil {
		return err
	}

	for row := 0; row < ib.Rows(); row++ {
		cells := make([]string, 0, len(columns)+1)
		cells = append(cells, fmt.Sprintf("%d", row+1))
		for _, name := range columns {
			cell, err := f.indexedCell(ib, name, row)
			if err != nil {
				return err
			}
			cells = append(cells, cell)
		}
		if err := f.writeIndentedLine(strings.Join(cells, " ")); err != nil {
			return err
		}
	}

	if err := f.writeIndentedLine(":::"); err != nil {
		return err
	}

	f.depth--
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.writeString("}\n")
}

func (f *Formatter) indexedCell(ib *block.IndexedBlock, name string, row int) (string, error) {
	switch name[0] {
	case 'b':
		col, err := ib.GetBoolProperty(name)
		if err != nil {
			return "", err
		}
		if !col.IsDefined(row) {
			return "<>", nil
		}
		v, err := col.At(row)
		if err != nil {
			return "", err
		}
		return formatBool(v), nil
	case 'r':
		col, err := ib.GetRealProperty(name)
		if err != nil {
			return "", err
		}
		if !col.IsDefined(row) {
			return "<>", nil
		}
		v, err := col.At(row)
		if err != nil {
			return "", err
		}
		return formatReal(v), nil
	case 'i':
		col, err := ib.GetIntProperty(name)
		if err != nil {
			return "", err
		}
		if !col.IsDefined(row) {
			return "<>", nil
		}
		v, err := col.At(row)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil
	case 's':
		col, err := ib.GetStringProperty(name)
		if err != nil {
			return "", err
		}
		if !col.IsDefined(row) {
			return "<>", nil
		}
		v, err := col.At(row)
		if err != nil {
			return "", err
		}
		return EscapeString(v), nil
	}
	return "", fmt.Errorf("maeparser: unrecognized property kind for %q", name)
}

func (f *Formatter) writeIndentedLine(s string) error {
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.writeString(s + "\n")
}

func (f *Formatter) writeIndent() error {
	return f.writeString(strings.Repeat(indentUnit, f.depth))
}

func (f *Formatter) writeString(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func sortedNames(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// formatReal writes %g output without the '+' of a positive exponent
// ("1e06" rather than "1e+06"), since the real-number scanner accepts only
// [-.0-9eE].
func formatReal(v float64) string {
	return strings.Replace(fmt.Sprintf("%g", v), "e+", "e", 1)
}

// EscapeString renders v the way the tokenizer expects to read it back:
// empty as `""`, a token free of quotes/backslash/whitespace verbatim,
// anything else quoted with '\' and '"' escaped.
func EscapeString(v string) string {
	if v == "" {
		return `""`
	}
	if !strings.ContainsAny(v, "\"\\ \t\r\n") {
		return v
	}
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}
