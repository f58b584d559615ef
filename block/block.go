// Package block implements the in-memory Maestro block model: Block (an
// outer or nested block with scalar properties, sub-blocks, and an
// indexed-block map) and the columnar types that back indexed blocks.
package block

import "github.com/schrodinger/maeparser/errs"

// Block holds the scalar properties, sub-blocks, and indexed-block map of
// one outer or nested '{ ... }' unit. Property maps are keyed by the full
// name (including its b_/i_/r_/s_ prefix); a name exists in at most one
// of the four maps, since the prefix determines kind.
//
// A Block is built by a single parser call and is not safe for concurrent
// use: reading a buffered indexed block through GetIndexedBlock
// materializes and caches it, which mutates the indexed-block map.
type Block struct {
	name string

	bools   map[string]bool
	ints    map[string]int
	reals   map[string]float64
	strings map[string]string

	subBlockOrder []string
	subBlocks     map[string]*Block

	indexed IndexedBlockMap
}

// New returns an empty Block with the given name (the empty string for
// an anonymous outer header block).
func New(name string) *Block {
	return &Block{
		name:      name,
		bools:     make(map[string]bool),
		ints:      make(map[string]int),
		reals:     make(map[string]float64),
		strings:   make(map[string]string),
		subBlocks: make(map[string]*Block),
	}
}

// Name returns the block's name.
func (b *Block) Name() string { return b.name }

func (b *Block) HasBoolProperty(name string) bool   { _, ok := b.bools[name]; return ok }
func (b *Block) HasIntProperty(name string) bool    { _, ok := b.ints[name]; return ok }
func (b *Block) HasRealProperty(name string) bool   { _, ok := b.reals[name]; return ok }
func (b *Block) HasStringProperty(name string) bool { _, ok := b.strings[name]; return ok }

func (b *Block) SetBoolProperty(name string, v bool)      { b.bools[name] = v }
func (b *Block) SetIntProperty(name string, v int)        { b.ints[name] = v }
func (b *Block) SetRealProperty(name string, v float64)   { b.reals[name] = v }
func (b *Block) SetStringProperty(name string, v string)  { b.strings[name] = v }

func (b *Block) GetBoolProperty(name string) (bool, error) {
	v, ok := b.bools[name]
	if !ok {
		return false, &errs.LookupError{Kind: "property", Name: name}
	}
	return v, nil
}

func (b *Block) GetIntProperty(name string) (int, error) {
	v, ok := b.ints[name]
	if !ok {
		return 0, &errs.LookupError{Kind: "property", Name: name}
	}
	return v, nil
}

func (b *Block) GetRealProperty(name string) (float64, error) {
	v, ok := b.reals[name]
	if !ok {
		return 0, &errs.LookupError{Kind: "property", Name: name}
	}
	return v, nil
}

func (b *Block) GetStringProperty(name string) (string, error) {
	v, ok := b.strings[name]
	if !ok {
		return "", &errs.LookupError{Kind: "property", Name: name}
	}
	return v, nil
}

// BoolPropertyNames, IntPropertyNames, RealPropertyNames, and
// StringPropertyNames return a kind's property names with no ordering
// guarantee; the serializer sorts them for deterministic output.
func (b *Block) BoolPropertyNames() []string   { return keysOf(b.bools) }
func (b *Block) IntPropertyNames() []string    { return keysOf(b.ints) }
func (b *Block) RealPropertyNames() []string   { return keysOf(b.reals) }
func (b *Block) StringPropertyNames() []string { return keysOf(b.strings) }

func keysOf[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	return names
}

// AddBlock attaches a sub-block, keyed by its own name. Adding a second
// block under a name already present replaces the earlier one in place,
// preserving that name's original position in BlockNames.
func (b *Block) AddBlock(sub *Block) {
	if _, exists := b.subBlocks[sub.name]; !exists {
		b.subBlockOrder = append(b.subBlockOrder, sub.name)
	}
	b.subBlocks[sub.name] = sub
}

// HasBlock reports whether a sub-block with the given name exists.
func (b *Block) HasBlock(name string) bool {
	_, ok := b.subBlocks[name]
	return ok
}

// GetBlock returns the named sub-block.
func (b *Block) GetBlock(name string) (*Block, error) {
	sub, ok := b.subBlocks[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "block", Name: name}
	}
	return sub, nil
}

// BlockNames returns sub-block names in insertion order.
func (b *Block) BlockNames() []string {
	out := make([]string, len(b.subBlockOrder))
	copy(out, b.subBlockOrder)
	return out
}

// SetIndexedBlockMap attaches the indexed-block map built for this block
// by the indexed-block parser (either eager or buffered).
func (b *Block) SetIndexedBlockMap(m IndexedBlockMap) { b.indexed = m }

// HasIndexedBlock reports whether an indexed block with the given name
// exists on this block.
func (b *Block) HasIndexedBlock(name string) bool {
	if b.indexed == nil {
		return false
	}
	return b.indexed.HasIndexedBlock(name)
}

// GetIndexedBlock returns the named indexed block, materializing it first
// if the underlying map is buffered and this is the first access.
func (b *Block) GetIndexedBlock(name string) (*IndexedBlock, error) {
	if b.indexed == nil {
		return nil, &errs.LookupError{Kind: "indexed block", Name: name}
	}
	return b.indexed.GetIndexedBlock(name)
}

// IndexedBlockNames returns this block's indexed-block names in insertion
// order, or nil if none were set.
func (b *Block) IndexedBlockNames() []string {
	if b.indexed == nil {
		return nil
	}
	return b.indexed.Names()
}
