package epub

import (
	"net/url"
	"path"

	"golang.org/x/text/unicode/norm"
)

// ResolveHref resolves the item's href to a path within the archive,
// relative to the directory containing the OPF document (spec.md §3: "a
// path relative to the OPF's directory"). Grounded in the teacher's
// EPUB.ResolveHref (pkg/epub/reader.go): manifest hrefs are IRI-encoded
// (spaces as %20) while ZIP entry names are not, and hrefs may be
// NFD-normalized while ZIP entries are NFC, so both are corrected for
// here before the caller tries to look the path up in the archive.
func (item *ManifestItem) ResolveHref() string {
	decoded, err := url.PathUnescape(item.Href)
	if err != nil {
		decoded = item.Href
	}
	decoded = norm.NFC.String(decoded)

	if item.opfDir == "" || item.opfDir == "." {
		return path.Clean(decoded)
	}
	return path.Clean(item.opfDir + "/" + decoded)
}
