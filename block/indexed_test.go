package block

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/require"
)

func TestIndexedPropertyStrictAndDefaultAccess(t *testing.T) {
	nulls := roaring.New()
	nulls.Add(1)
	p := NewIndexedProperty([]float64{1.0, 0, 3.0}, nulls)

	require.True(t, p.IsDefined(0))
	require.False(t, p.IsDefined(1))
	require.True(t, p.IsDefined(2))

	v, err := p.At(0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	_, err = p.At(1)
	require.Error(t, err)

	require.Equal(t, 999.0, p.AtDefault(1, 999.0))
}

func TestIndexedPropertyLazyNullAllocation(t *testing.T) {
	p := NewIndexedProperty([]int{1, 2, 3}, nil)
	require.False(t, p.HasUndefinedValues())
	p.Undefine(1)
	require.True(t, p.HasUndefinedValues())
	require.False(t, p.IsDefined(1))
}

func TestIndexedBlockMapBuffered(t *testing.T) {
	buf := NewIndexedBlockBuffer("m_nested", 2, []string{"s_m_prop"})
	buf.AppendToken([]byte("1"))
	buf.AppendToken([]byte("1.1.0"))
	buf.AppendToken([]byte("2"))
	buf.AppendToken([]byte("1.1.0"))

	m := NewBufferedBlockMap()
	m.AddBuffer("m_nested", buf)
	require.True(t, m.HasIndexedBlock("m_nested"))

	ib, err := m.GetIndexedBlock("m_nested")
	require.NoError(t, err)
	col, err := ib.GetStringProperty("s_m_prop")
	require.NoError(t, err)
	require.Equal(t, []string{"1.1.0", "1.1.0"}, col.Values())

	// Second fetch returns the cached block without re-materializing.
	ib2, err := m.GetIndexedBlock("m_nested")
	require.NoError(t, err)
	require.Same(t, ib, ib2)
}

func TestIndexedBlockMapBufferedNullMarker(t *testing.T) {
	buf := NewIndexedBlockBuffer("m_atom", 3, []string{"r_m_charge"})
	buf.AppendToken([]byte("1"))
	buf.AppendToken([]byte("0.1"))
	buf.AppendToken([]byte("2"))
	buf.AppendToken([]byte("<>"))
	buf.AppendToken([]byte("3"))
	buf.AppendToken([]byte("0.3"))

	ib, err := buf.Materialize()
	require.NoError(t, err)
	col, err := ib.GetRealProperty("r_m_charge")
	require.NoError(t, err)
	require.True(t, col.IsDefined(0))
	require.False(t, col.IsDefined(1))
	require.True(t, col.IsDefined(2))
	require.Equal(t, 999.0, col.AtDefault(1, 999.0))
}

func TestIndexedBlockMapBufferedQuotedString(t *testing.T) {
	buf := NewIndexedBlockBuffer("m_prop", 1, []string{"s_m_name"})
	buf.AppendToken([]byte("1"))
	buf.AppendToken([]byte(`"a \" b"`))

	ib, err := buf.Materialize()
	require.NoError(t, err)
	col, err := ib.GetStringProperty("s_m_name")
	require.NoError(t, err)
	v, err := col.At(0)
	require.NoError(t, err)
	require.Equal(t, `a " b`, v)
}

func TestIndexedBlockEqual(t *testing.T) {
	a := NewIndexedBlock("m_atom", 2, []string{"i_m_n"})
	a.SetIntProperty("i_m_n", NewIndexedProperty([]int{1, 2}, nil))

	c := NewIndexedBlock("m_atom", 2, []string{"i_m_n"})
	c.SetIntProperty("i_m_n", NewIndexedProperty([]int{1, 2}, nil))

	require.True(t, a.Equal(c))
	c.SetIntProperty("i_m_n", NewIndexedProperty([]int{1, 3}, nil))
	require.False(t, a.Equal(c))
}
