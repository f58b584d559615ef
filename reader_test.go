package maeparser_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schrodinger/maeparser"
)

func TestReaderReadsFixtureInOrder(t *testing.T) {
	r, err := maeparser.NewReader(filepath.Join("testdata", "aspirin.mae"))
	require.NoError(t, err)
	defer r.Close()

	header, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "", header.Name())
	v, err := header.GetStringProperty("s_m_m2io_version")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", v)

	ct, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "f_m_ct", ct.Name())
	title, err := ct.GetStringProperty("s_m_title")
	require.NoError(t, err)
	require.Equal(t, "aspirin", title)

	atoms, err := ct.GetIndexedBlock("m_atom")
	require.NoError(t, err)
	charges, err := atoms.GetRealProperty("r_m_charge1")
	require.NoError(t, err)
	require.False(t, charges.IsDefined(0))
	require.True(t, charges.IsDefined(1))

	next, err := r.Next()
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestReaderNextWithNameSkipsOtherBlocks(t *testing.T) {
	r, err := maeparser.NewReader(filepath.Join("testdata", "aspirin.mae"))
	require.NoError(t, err)
	defer r.Close()

	ct, err := r.NextWithName("f_m_ct")
	require.NoError(t, err)
	require.Equal(t, "f_m_ct", ct.Name())

	missing, err := r.NextWithName("f_m_ct")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestReaderStrictModeRejectsMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-header.mae")
	require.NoError(t, os.WriteFile(path, []byte("f_m_ct {\n  :::\n}\n"), 0o644))

	r, err := maeparser.NewReader(path, maeparser.WithStrictMode(true))
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.Error(t, err)
}

func TestReaderFromGzipFile(t *testing.T) {
	src := filepath.Join("testdata", "aspirin.mae")
	data, err := os.ReadFile(src)
	require.NoError(t, err)

	gzPath := filepath.Join(t.TempDir(), "aspirin.maegz")
	w, err := maeparser.NewWriter(gzPath)
	require.NoError(t, err)
	r := maeparser.NewReaderFromStream(bytes.NewReader(data))
	for {
		b, err := r.Next()
		require.NoError(t, err)
		if b == nil {
			break
		}
		require.NoError(t, w.Write(b))
	}
	require.NoError(t, w.Close())

	gr, err := maeparser.NewReader(gzPath)
	require.NoError(t, err)
	defer gr.Close()

	ct, err := gr.NextWithName("f_m_ct")
	require.NoError(t, err)
	require.Equal(t, "f_m_ct", ct.Name())
}
