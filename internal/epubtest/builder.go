// Package epubtest builds small, in-memory EPUB archives for tests. It is
// the direct descendant of the teacher's benchmarks/generate-test-epubs.go
// and cmd/epubfuzz, shrunk from "generate a corpus of on-disk EPUBs for
// benchmarking/fuzzing against epubcheck" down to "build the exact
// boundary cases spec.md §8 enumerates, in memory, for this module's own
// tests" — no Java toolchain, no filesystem, no network.
package epubtest

import (
	"archive/zip"
	"bytes"
)

// Builder accumulates ZIP entries for a synthetic EPUB archive. Entries
// are written in the order they are added, so the mimetype entry comes
// first only when Builder.Mimetype is called before Builder.File; it is
// stored rather than compressed, matching the OCF requirement the
// teacher's generator also honors.
type Builder struct {
	buf bytes.Buffer
	zw  *zip.Writer
	err error
}

// New starts a new, empty archive.
func New() *Builder {
	b := &Builder{}
	b.zw = zip.NewWriter(&b.buf)
	return b
}

// Mimetype writes the mimetype entry. content is normally
// "application/epub+zip"; tests pass something else to exercise
// InvalidMimetype.
func (b *Builder) Mimetype(content string) *Builder {
	if b.err != nil {
		return b
	}
	w, err := b.zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		b.err = err
		return b
	}
	_, b.err = w.Write([]byte(content))
	return b
}

// File adds a deflated entry at name with the given content.
func (b *Builder) File(name, content string) *Builder {
	if b.err != nil {
		return b
	}
	w, err := b.zw.Create(name)
	if err != nil {
		b.err = err
		return b
	}
	_, b.err = w.Write([]byte(content))
	return b
}

// Bytes finalizes the archive and returns its bytes. The Builder must not
// be reused afterward.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.zw.Close(); err != nil {
		return nil, err
	}
	return b.buf.Bytes(), nil
}

// MustBytes is Bytes for tests that want to fail loudly rather than
// thread an error through table-driven setup.
func (b *Builder) MustBytes() []byte {
	data, err := b.Bytes()
	if err != nil {
		panic(err)
	}
	return data
}
