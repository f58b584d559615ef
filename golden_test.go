package maeparser_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schrodinger/maeparser"
	"github.com/schrodinger/maeparser/block"
	"github.com/schrodinger/maeparser/internal/parser"
)

// readAllBlocks drains r, asserting every block parses without error.
func readAllBlocks(t *testing.T, r *maeparser.Reader) []*block.Block {
	t.Helper()
	var blocks []*block.Block
	for {
		b, err := r.Next()
		require.NoError(t, err)
		if b == nil {
			return blocks
		}
		blocks = append(blocks, b)
	}
}

func TestGoldenFixturesRoundTrip(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.mae"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, strategy := range []parser.Strategy{parser.Buffered, parser.Direct} {
				data, err := os.ReadFile(file)
				require.NoError(t, err)

				r := maeparser.NewReaderFromStream(bytes.NewReader(data), maeparser.WithStrategy(strategy))
				blocks := readAllBlocks(t, r)
				require.NotEmpty(t, blocks)

				var out bytes.Buffer
				w, err := maeparser.NewWriterToStream(&out)
				require.NoError(t, err)
				for _, b := range blocks[1:] { // skip the version header this fixture already carries
					require.NoError(t, w.Write(b))
				}
				require.NoError(t, w.Close())

				r2 := maeparser.NewReaderFromStream(bytes.NewReader(out.Bytes()))
				reparsed := readAllBlocks(t, r2)
				require.Equal(t, len(blocks), len(reparsed)) // writer's own header, plus every written block

				for i, b := range blocks[1:] {
					require.True(t, b.Equal(reparsed[i+1]))
				}

				var out2 bytes.Buffer
				w2, err := maeparser.NewWriterToStream(&out2)
				require.NoError(t, err)
				for _, b := range reparsed[1:] {
					require.NoError(t, w2.Write(b))
				}
				require.NoError(t, w2.Close())
				require.Equal(t, out.String(), out2.String())
			}
		})
	}
}
