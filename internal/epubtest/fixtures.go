package epubtest

import (
	"os"
	"path/filepath"
)

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const containerXMLNoRootfile = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
  </rootfiles>
</container>`

// MinimalValid builds spec.md §8 Scenario 1: a minimal valid EPUB with one
// primary identifier, a title, a language, and empty manifest/spine.
func MinimalValid() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="pub-id">urn:uuid:X</dc:identifier>
    <dc:title>Hello</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest/>
  <spine/>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// LinearSpine builds spec.md §8 Scenario 2: three itemrefs, one marked
// linear="no", exercising Spine.LinearLen and SequentialResourcePaths.
func LinearSpine() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="pub-id">urn:uuid:X</dc:identifier>
  </metadata>
  <manifest>
    <item id="a" href="a.xhtml" media-type="application/xhtml+xml"/>
    <item id="b" href="b.xhtml" media-type="application/xhtml+xml"/>
    <item id="c" href="c.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="a"/>
    <itemref idref="b" linear="no"/>
    <itemref idref="c" linear="yes"/>
  </spine>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// WrongMimetype builds spec.md §8 Scenario 3: first archive entry carries
// the wrong literal.
func WrongMimetype() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"/>
  <manifest/>
  <spine/>
</package>`
	return New().
		Mimetype("application/zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// MissingRootfile builds spec.md §8 Scenario 4: a well-formed
// container.xml with no rootfile element.
func MissingRootfile() []byte {
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXMLNoRootfile).
		MustBytes()
}

// DanglingIdref builds spec.md §8 Scenario 5: a linear itemref whose idref
// matches no manifest item.
func DanglingIdref() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"/>
  <manifest>
    <item id="a" href="a.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="a"/>
    <itemref idref="missing"/>
  </spine>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// AmbiguousIdentifier builds spec.md §8 Scenario 6: two dc:identifier
// elements, only one of which carries the id named by unique-identifier.
func AmbiguousIdentifier() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier>ignored-identifier</dc:identifier>
    <dc:identifier id="pub-id">urn:uuid:correct</dc:identifier>
  </metadata>
  <manifest/>
  <spine/>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// DuplicateManifestID builds a manifest with two <item> elements sharing
// an id, exercising the "last insertion wins" invariant (spec.md §8).
func DuplicateManifestID() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/"/>
  <manifest>
    <item id="a" href="first.xhtml" media-type="application/xhtml+xml"/>
    <item id="a" href="second.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="a"/>
  </spine>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// NoMetadata builds an OPF with no <metadata> element at all.
func NoMetadata() []byte {
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <manifest/>
  <spine/>
</package>`
	return New().
		Mimetype("application/epub+zip").
		File("META-INF/container.xml", containerXML).
		File("OEBPS/content.opf", opf).
		MustBytes()
}

// WriteTemp writes data to a new temporary file under dir (created if
// empty) and returns its path.
func WriteTemp(dir, name string, data []byte) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "epubtest")
		if err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
