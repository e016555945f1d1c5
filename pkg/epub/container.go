package epub

import (
	"bytes"
	"encoding/xml"
	"io"
)

const containerPath = "META-INF/container.xml"

// rootfileRef is one <rootfile> element found in container.xml.
type rootfileRef struct {
	fullPath  string
	mediaType string
}

// resolveContainer reads META-INF/container.xml and scans it, in recovery
// mode, for the first element whose local name is "rootfile" (spec.md
// §4.3). It returns that element's full-path attribute as the OPF path,
// plus every rootfile seen (SPEC_FULL §8's AllRootfiles, for diagnostics
// only — the read path still acts on the first match alone, per OQ-5 in
// DESIGN.md).
func resolveContainer(a *archive) (opfPath string, allRootfiles []rootfileRef, err error) {
	data, rerr := a.readEntireEntry(containerPath)
	if rerr != nil {
		if Is(rerr, FileNotFoundInArchive) {
			return "", nil, newError("resolveContainer", FileNotFoundInArchive, nil)
		}
		return "", nil, newError("resolveContainer", XMLReadFromBuffer, rerr)
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	var found bool
	for {
		tok, terr := decoder.Token()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return "", nil, newError("resolveContainer", XMLParseError, terr)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "rootfile" {
			continue
		}

		var ref rootfileRef
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "full-path":
				ref.fullPath = attr.Value
			case "media-type":
				ref.mediaType = attr.Value
			}
		}
		allRootfiles = append(allRootfiles, ref)

		if !found {
			found = true
			if ref.fullPath == "" {
				return "", allRootfiles, newError("resolveContainer", XMLDocumentInvalid, nil)
			}
			opfPath = ref.fullPath
		}
	}

	if !found {
		return "", nil, newError("resolveContainer", XMLElementNotFound, nil)
	}
	return opfPath, allRootfiles, nil
}
