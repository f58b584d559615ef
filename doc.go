/*
Package maeparser reads and writes Maestro (.mae) files: Schrodinger's
hierarchical chemistry file format for molecular structures, property
tables, and arbitrary nested metadata.

A .mae file is a sequence of "outer" blocks. Each block has scalar
properties (booleans, integers, reals, strings), zero or more indexed
sub-blocks (column-oriented tables — one row per atom or bond, say), and
zero or more plain nested sub-blocks. Reader walks the outer blocks one
at a time without loading the whole file into memory:

	r, err := maeparser.NewReader("structures.mae")
	if err != nil {
		// handle error
	}
	for {
		b, err := r.Next()
		if err != nil {
			// handle error
		}
		if b == nil {
			break
		}
		title, _ := b.GetStringProperty("s_m_title")
		fmt.Println(title)
	}

Files ending in ".maegz" or ".mae.gz" are transparently gzip-decompressed
on read and gzip-compressed on write. Writer emits the version header
block expected by downstream Maestro tools on construction and flushes
on Close:

	w, err := maeparser.NewWriter("out.maegz")
	if err != nil {
		// handle error
	}
	defer w.Close()
	if err := w.Write(b); err != nil {
		// handle error
	}

Blocks can also be read from or written to an arbitrary io.Reader/
io.Writer via NewReaderFromStream and NewWriterToStream, and the
internal/parser package exposes a choice between two indexed-block
decoding strategies (direct and buffered) via the WithStrategy option.
*/
package maeparser
