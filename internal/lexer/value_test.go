package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntBasic(t *testing.T) {
	buf := load("123 ")
	v, err := ParseInt(buf)
	require.NoError(t, err)
	require.Equal(t, 123, v)
}

func TestParseIntNegative(t *testing.T) {
	buf := load("-42]")
	v, err := ParseInt(buf)
	require.NoError(t, err)
	require.Equal(t, -42, v)
}

func TestParseIntMissing(t *testing.T) {
	buf := load(" ")
	_, err := ParseInt(buf)
	require.ErrorContains(t, err, "Missing integer")
}

func TestParseIntDoubleSign(t *testing.T) {
	buf := load("--1 ")
	_, err := ParseInt(buf)
	require.ErrorContains(t, err, "Unexpected '-'")
}

func TestParseRealBasic(t *testing.T) {
	buf := load("1.1 ")
	v, err := ParseReal(buf)
	require.NoError(t, err)
	require.InDelta(t, 1.1, v, 1e-9)
}

func TestParseRealExponent(t *testing.T) {
	buf := load("-1.5e3 ")
	v, err := ParseReal(buf)
	require.NoError(t, err)
	require.InDelta(t, -1500.0, v, 1e-9)
}

func TestParseStringUnquoted(t *testing.T) {
	buf := load("m_atom ")
	v, err := ParseString(buf)
	require.NoError(t, err)
	require.Equal(t, "m_atom", v)
}

func TestParseStringQuotedWithEscapes(t *testing.T) {
	buf := load(`"Title with p \\ \" space" `)
	v, err := ParseString(buf)
	require.NoError(t, err)
	require.Equal(t, `Title with p \ " space`, v)
}

func TestParseStringUnterminated(t *testing.T) {
	buf := load(`"never closes`)
	_, err := ParseString(buf)
	require.ErrorContains(t, err, "Unterminated quoted string")
}

func TestParseBoolTrueFalse(t *testing.T) {
	buf := load("1 ")
	v, err := ParseBool(buf)
	require.NoError(t, err)
	require.True(t, v)

	buf2 := load("0 ")
	v2, err := ParseBool(buf2)
	require.NoError(t, err)
	require.False(t, v2)
}

func TestParseBoolRejectsOtherDigits(t *testing.T) {
	buf := load("2 ")
	_, err := ParseBool(buf)
	require.ErrorContains(t, err, "Unexpected character for boolean value")
}

func TestParseBoolAtEOF(t *testing.T) {
	buf := load("1")
	v, err := ParseBool(buf)
	require.NoError(t, err)
	require.True(t, v)
}
