package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockScalarProperties(t *testing.T) {
	b := New("f_m_ct")
	b.SetStringProperty("s_m_title", "aspirin")
	b.SetIntProperty("i_m_ct_format", 2)
	b.SetRealProperty("r_m_energy", 12.5)
	b.SetBoolProperty("b_m_flag", true)

	require.True(t, b.HasStringProperty("s_m_title"))
	v, err := b.GetStringProperty("s_m_title")
	require.NoError(t, err)
	require.Equal(t, "aspirin", v)

	_, err = b.GetStringProperty("s_m_missing")
	require.Error(t, err)
}

func TestBlockSubBlockInsertionOrder(t *testing.T) {
	b := New("f_m_ct")
	b.AddBlock(New("m_atom"))
	b.AddBlock(New("m_bond"))
	b.AddBlock(New("m_charge"))
	require.Equal(t, []string{"m_atom", "m_bond", "m_charge"}, b.BlockNames())

	// Re-adding a name replaces the value but keeps its original slot.
	replacement := New("m_atom")
	replacement.SetIntProperty("i_m_extra", 1)
	b.AddBlock(replacement)
	require.Equal(t, []string{"m_atom", "m_bond", "m_charge"}, b.BlockNames())

	got, err := b.GetBlock("m_atom")
	require.NoError(t, err)
	require.True(t, got.HasIntProperty("i_m_extra"))
}

func TestBlockEqualityRealTolerance(t *testing.T) {
	a := New("")
	a.SetRealProperty("r_m_x", 1.0)
	c := New("")
	c.SetRealProperty("r_m_x", 1.0+5e-6)
	require.True(t, a.Equal(c))

	c.SetRealProperty("r_m_x", 1.0+5e-4)
	require.False(t, a.Equal(c))
}

func TestBlockEqualitySubBlocks(t *testing.T) {
	a := New("f_m_ct")
	sub := New("m_atom")
	sub.SetIntProperty("i_m_n", 1)
	a.AddBlock(sub)

	c := New("f_m_ct")
	sub2 := New("m_atom")
	sub2.SetIntProperty("i_m_n", 1)
	c.AddBlock(sub2)

	require.True(t, a.Equal(c))

	sub2.SetIntProperty("i_m_n", 2)
	require.False(t, a.Equal(c))
}
