package epub

import (
	"archive/zip"
	"io"
	"os"
)

// archive is a thin, single-threaded adapter over a ZIP container,
// grounded in the teacher's pkg/epub.Reader: it owns the *os.File and the
// *zip.Reader built over it, and indexes entries by name for O(1) lookup.
// Callers must serialize their own access (spec.md §4.1); nothing here
// takes a lock.
type archive struct {
	file    *os.File
	zr      *zip.Reader
	entries map[string]*zip.File
	closed  bool
}

// openArchive opens path as a ZIP container.
func openArchive(path string) (*archive, error) {
	if path == "" {
		return nil, newError("openArchive", InvalidArgument, nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, newError("openArchive", ArchiveUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, newError("openArchive", ArchiveUnavailable, err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, newError("openArchive", ArchiveUnavailable, err)
	}
	a := &archive{
		file:    f,
		zr:      zr,
		entries: make(map[string]*zip.File, len(zr.File)),
	}
	for _, entry := range zr.File {
		a.entries[entry.Name] = entry
	}
	return a, nil
}

// entryCount returns the number of entries in the archive.
func (a *archive) entryCount() int {
	return len(a.zr.File)
}

// firstEntry returns the archive's first entry (by on-disk order), used
// by the mimetype bootstrap check (spec.md §4.2).
func (a *archive) firstEntry() (*zip.File, bool) {
	if len(a.zr.File) == 0 {
		return nil, false
	}
	return a.zr.File[0], true
}

// locateAndOpen returns an open reader for the named entry.
func (a *archive) locateAndOpen(name string) (io.ReadCloser, error) {
	if a.closed {
		return nil, newError("locateAndOpen", ArchiveUnavailable, nil)
	}
	if name == "" {
		return nil, newError("locateAndOpen", InvalidArgument, nil)
	}
	entry, ok := a.entries[name]
	if !ok {
		return nil, newError("locateAndOpen", FileNotFoundInArchive, nil)
	}
	rc, err := entry.Open()
	if err != nil {
		return nil, newError("locateAndOpen", FileReadFromArchive, err)
	}
	return rc, nil
}

// readEntireEntry reads the named entry fully into memory.
func (a *archive) readEntireEntry(name string) ([]byte, error) {
	rc, err := a.locateAndOpen(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	entry := a.entries[name]
	buf := make([]byte, entry.UncompressedSize64)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, newError("readEntireEntry", FileReadFromArchive, err)
	}
	if uint64(n) != entry.UncompressedSize64 {
		return nil, newError("readEntireEntry", FileReadFromArchive, nil)
	}
	return buf, nil
}

// close releases the archive handle. Safe to call more than once.
func (a *archive) close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.file.Close()
}
