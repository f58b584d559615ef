package block

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/schrodinger/maeparser/errs"
)

// IndexedProperty is one column of an indexed block: a dense vector of T
// of length N, plus an optional null bitmap. A nil bitmap means every
// cell is defined, matching the "allocate lazily on first null" design.
type IndexedProperty[T any] struct {
	values []T
	nulls  *roaring.Bitmap
}

// NewIndexedProperty wraps values as a column, taking ownership of the
// slice. nulls may be nil when every cell is defined.
func NewIndexedProperty[T any](values []T, nulls *roaring.Bitmap) *IndexedProperty[T] {
	return &IndexedProperty[T]{values: values, nulls: nulls}
}

// Len returns the column's row count.
func (p *IndexedProperty[T]) Len() int { return len(p.values) }

// HasUndefinedValues reports whether any cell in the column is null.
func (p *IndexedProperty[T]) HasUndefinedValues() bool {
	return p.nulls != nil && !p.nulls.IsEmpty()
}

// IsDefined reports whether row index has a defined value.
func (p *IndexedProperty[T]) IsDefined(index int) bool {
	if p.nulls == nil {
		return true
	}
	return !p.nulls.Contains(uint32(index))
}

// At returns the value at index, failing with a StateError if the cell is
// undefined.
func (p *IndexedProperty[T]) At(index int) (T, error) {
	if !p.IsDefined(index) {
		var zero T
		return zero, &errs.StateError{Message: "indexed property value undefined"}
	}
	return p.values[index], nil
}

// AtDefault returns the value at index, substituting def when the cell is
// undefined.
func (p *IndexedProperty[T]) AtDefault(index int, def T) T {
	if !p.IsDefined(index) {
		return def
	}
	return p.values[index]
}

// Set assigns a value at index, clearing its null bit if one was set.
func (p *IndexedProperty[T]) Set(index int, v T) {
	p.values[index] = v
	if p.nulls != nil {
		p.nulls.Remove(uint32(index))
	}
}

// Undefine marks index as null, allocating the bitmap if this is the
// first null in the column.
func (p *IndexedProperty[T]) Undefine(index int) {
	if p.nulls == nil {
		p.nulls = roaring.New()
	}
	p.nulls.Add(uint32(index))
}

// Values returns the column's underlying dense slice. Callers must not
// mutate entries at undefined indices and expect them to stay undefined;
// use Set/Undefine instead.
func (p *IndexedProperty[T]) Values() []T { return p.values }

// IndexedBlock is one named columnar table: four per-kind maps of
// property name to IndexedProperty, all sharing the same row count.
type IndexedBlock struct {
	name        string
	rows        int
	columnOrder []string

	bools   map[string]*IndexedProperty[bool]
	ints    map[string]*IndexedProperty[int]
	reals   map[string]*IndexedProperty[float64]
	strings map[string]*IndexedProperty[string]
}

// NewIndexedBlock returns an empty indexed block with the given name and
// declared row count. columnOrder records the property keys in the order
// they were declared, which the serializer must preserve.
func NewIndexedBlock(name string, rows int, columnOrder []string) *IndexedBlock {
	return &IndexedBlock{
		name:        name,
		rows:        rows,
		columnOrder: columnOrder,
		bools:       make(map[string]*IndexedProperty[bool]),
		ints:        make(map[string]*IndexedProperty[int]),
		reals:       make(map[string]*IndexedProperty[float64]),
		strings:     make(map[string]*IndexedProperty[string]),
	}
}

func (ib *IndexedBlock) Name() string        { return ib.name }
func (ib *IndexedBlock) Rows() int           { return ib.rows }
func (ib *IndexedBlock) ColumnOrder() []string {
	out := make([]string, len(ib.columnOrder))
	copy(out, ib.columnOrder)
	return out
}

func (ib *IndexedBlock) HasBoolProperty(name string) bool   { _, ok := ib.bools[name]; return ok }
func (ib *IndexedBlock) HasIntProperty(name string) bool    { _, ok := ib.ints[name]; return ok }
func (ib *IndexedBlock) HasRealProperty(name string) bool   { _, ok := ib.reals[name]; return ok }
func (ib *IndexedBlock) HasStringProperty(name string) bool { _, ok := ib.strings[name]; return ok }

func (ib *IndexedBlock) SetBoolProperty(name string, p *IndexedProperty[bool])     { ib.bools[name] = p }
func (ib *IndexedBlock) SetIntProperty(name string, p *IndexedProperty[int])       { ib.ints[name] = p }
func (ib *IndexedBlock) SetRealProperty(name string, p *IndexedProperty[float64])  { ib.reals[name] = p }
func (ib *IndexedBlock) SetStringProperty(name string, p *IndexedProperty[string]) { ib.strings[name] = p }

func (ib *IndexedBlock) GetBoolProperty(name string) (*IndexedProperty[bool], error) {
	p, ok := ib.bools[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed property", Name: name}
	}
	return p, nil
}

func (ib *IndexedBlock) GetIntProperty(name string) (*IndexedProperty[int], error) {
	p, ok := ib.ints[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed property", Name: name}
	}
	return p, nil
}

func (ib *IndexedBlock) GetRealProperty(name string) (*IndexedProperty[float64], error) {
	p, ok := ib.reals[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed property", Name: name}
	}
	return p, nil
}

func (ib *IndexedBlock) GetStringProperty(name string) (*IndexedProperty[string], error) {
	p, ok := ib.strings[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed property", Name: name}
	}
	return p, nil
}

// IndexedBlockMap is the interface shared by the eager and buffered
// indexed-block map realizations (spec.md's IndexedBlockMap, §3).
type IndexedBlockMap interface {
	HasIndexedBlock(name string) bool
	GetIndexedBlock(name string) (*IndexedBlock, error)
	// Names returns the contained indexed-block names in insertion order.
	Names() []string
}

// EagerBlockMap holds fully materialized indexed blocks, built by the
// direct parsing strategy.
type EagerBlockMap struct {
	order  []string
	blocks map[string]*IndexedBlock
}

// NewEagerBlockMap returns an empty eager indexed-block map.
func NewEagerBlockMap() *EagerBlockMap {
	return &EagerBlockMap{blocks: make(map[string]*IndexedBlock)}
}

// Add attaches an already-materialized indexed block, keyed by name.
func (m *EagerBlockMap) Add(name string, ib *IndexedBlock) {
	if _, exists := m.blocks[name]; !exists {
		m.order = append(m.order, name)
	}
	m.blocks[name] = ib
}

func (m *EagerBlockMap) HasIndexedBlock(name string) bool {
	_, ok := m.blocks[name]
	return ok
}

func (m *EagerBlockMap) GetIndexedBlock(name string) (*IndexedBlock, error) {
	ib, ok := m.blocks[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed block", Name: name}
	}
	return ib, nil
}

func (m *EagerBlockMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// BufferedBlockMap holds indexed blocks in their unmaterialized,
// captured-token-span form until first access. Materialization is
// one-shot: the buffer entry is consumed and replaced by the cached
// result, modeling the Buffered -> Materialized state transition as a
// move out of the map.
type BufferedBlockMap struct {
	order    []string
	buffers  map[string]*IndexedBlockBuffer
	cache    map[string]*IndexedBlock
}

// NewBufferedBlockMap returns an empty buffered indexed-block map.
func NewBufferedBlockMap() *BufferedBlockMap {
	return &BufferedBlockMap{
		buffers: make(map[string]*IndexedBlockBuffer),
		cache:   make(map[string]*IndexedBlock),
	}
}

// AddBuffer attaches an unmaterialized indexed block, keyed by name.
func (m *BufferedBlockMap) AddBuffer(name string, buf *IndexedBlockBuffer) {
	if _, exists := m.buffers[name]; !exists {
		if _, cached := m.cache[name]; !cached {
			m.order = append(m.order, name)
		}
	}
	m.buffers[name] = buf
}

func (m *BufferedBlockMap) HasIndexedBlock(name string) bool {
	if _, ok := m.buffers[name]; ok {
		return true
	}
	_, ok := m.cache[name]
	return ok
}

// GetIndexedBlock materializes the named block on first access and
// caches the result; subsequent calls return the cached block.
func (m *BufferedBlockMap) GetIndexedBlock(name string) (*IndexedBlock, error) {
	if ib, ok := m.cache[name]; ok {
		return ib, nil
	}
	buf, ok := m.buffers[name]
	if !ok {
		return nil, &errs.LookupError{Kind: "indexed block", Name: name}
	}
	ib, err := buf.Materialize()
	if err != nil {
		return nil, err
	}
	m.cache[name] = ib
	delete(m.buffers, name)
	return ib, nil
}

func (m *BufferedBlockMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
