package epub

import "io"

// requiredMimetype is the literal the first archive entry must contain
// (spec.md §4.2). The EPUB 3 container format mandates it be the first,
// stored entry in the ZIP.
const requiredMimetype = "application/epub+zip"

// validateMimetype reads only the first entry of the archive and compares
// its first 20 bytes against requiredMimetype. Grounded in the teacher's
// checkMimetypePresent/checkMimetypeContent (pkg/validate/ocf.go), folded
// into a single bootstrap check since this core does not validate the
// full OCF content model, only what's needed to proceed.
func validateMimetype(a *archive) error {
	entry, ok := a.firstEntry()
	if !ok {
		return newError("validateMimetype", InvalidMimetype, nil)
	}
	rc, err := entry.Open()
	if err != nil {
		return newError("validateMimetype", FileReadFromArchive, err)
	}
	defer rc.Close()

	buf := make([]byte, len(requiredMimetype))
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return newError("validateMimetype", FileReadFromArchive, err)
	}
	if string(buf[:n]) != requiredMimetype {
		return newError("validateMimetype", InvalidMimetype, nil)
	}
	return nil
}
