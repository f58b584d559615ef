package maeparser_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schrodinger/maeparser"
	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/constants"
)

func TestWriterEmitsVersionHeaderFirst(t *testing.T) {
	var out bytes.Buffer
	w, err := maeparser.NewWriterToStream(&out)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := maeparser.NewReaderFromStream(bytes.NewReader(out.Bytes()))
	header, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "", header.Name())
	v, err := header.GetStringProperty(constants.FormatVersion)
	require.NoError(t, err)
	require.Equal(t, constants.CurrentVersion, v)
}

func TestWriterRoundTripsThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mae")
	w, err := maeparser.NewWriter(path)
	require.NoError(t, err)

	ct := block.New(constants.CtBlock)
	ct.SetStringProperty(constants.CtTitle, "benzene")
	require.NoError(t, w.Write(ct))
	require.NoError(t, w.Close())

	r, err := maeparser.NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.NextWithName(constants.CtBlock)
	require.NoError(t, err)
	require.NotNil(t, got)
	title, err := got.GetStringProperty(constants.CtTitle)
	require.NoError(t, err)
	require.Equal(t, "benzene", title)
}

func TestWriterGzipSuffixRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.maegz")
	w, err := maeparser.NewWriter(path, maeparser.WithCompressionLevel(9))
	require.NoError(t, err)

	ct := block.New(constants.CtBlock)
	ct.SetIntProperty("i_m_ct_format", 2)
	require.NoError(t, w.Write(ct))
	require.NoError(t, w.Close())

	r, err := maeparser.NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.NextWithName(constants.CtBlock)
	require.NoError(t, err)
	v, err := got.GetIntProperty("i_m_ct_format")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}
