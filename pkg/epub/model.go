// Package epub opens an EPUB 3 archive and builds a queryable in-memory
// model of its publication: metadata, manifest, and spine. It is strictly
// a reader — ZIP decoding is delegated to archive/zip, XML tokenization to
// encoding/xml, and the package never writes back to the archive it read.
//
// Publication, and everything it owns, is built once during Open and is
// read-only afterward. It is not safe for concurrent use without external
// synchronization — the single-threaded contract this package assumes
// mirrors the teacher's own OCF/OPF access pattern (one archive, one
// caller goroutine).
package epub

import (
	"strconv"

	"github.com/adammathes/epubread/pkg/diag"
)

// Metadata holds the Dublin Core fields this core surfaces (spec.md §3).
type Metadata struct {
	title      string
	hasTitle   bool
	language   string
	hasLang    bool
	identifier string
	hasIdent   bool
	// uniqueIdentifierID is package/@unique-identifier: the id that
	// nominates which <dc:identifier> is primary.
	uniqueIdentifierID string
}

// Title returns the publication's title, if one was captured.
func (m *Metadata) Title() (string, bool) { return m.title, m.hasTitle }

// Language returns the publication's language tag, if one was captured.
func (m *Metadata) Language() (string, bool) { return m.language, m.hasLang }

// Identifier returns the text of the <dc:identifier> whose id attribute
// equals package/@unique-identifier — the primary identifier (spec.md
// §3's Metadata invariant).
func (m *Metadata) Identifier() (string, bool) { return m.identifier, m.hasIdent }

// ManifestItem is one resource declared in the OPF manifest (spec.md §3).
// It is owned exclusively by the Manifest that created it and is never
// mutated after insertion.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties string

	// opfDir is the directory containing the OPF document, captured at
	// parse time so ResolveHref (SPEC_FULL §8) needs no external input.
	opfDir string
}

// Manifest is the indexed collection of ManifestItems, keyed by
// identifier (spec.md §4.5). A Go map is the idiomatic stand-in for the
// spec's hand-rolled separate-chaining hash table: both give average O(1)
// lookup and insertion, and spec.md §9 explicitly defers the hash choice
// to whatever is idiomatic. See DESIGN.md for the full justification.
type Manifest struct {
	byID   map[string]*ManifestItem
	byHref map[string]*ManifestItem
}

func newManifest() *Manifest {
	return &Manifest{
		byID:   make(map[string]*ManifestItem),
		byHref: make(map[string]*ManifestItem),
	}
}

// insert adds item to the manifest, keyed by its ID. Inserting a
// duplicate ID replaces the prior item (spec.md §4.5); insertion count
// only increases on the first occurrence of an ID (Manifest.Len()).
func (m *Manifest) insert(item *ManifestItem) {
	if old, ok := m.byID[item.ID]; ok {
		delete(m.byHref, old.Href)
	}
	m.byID[item.ID] = item
	if item.Href != "" {
		m.byHref[item.Href] = item
	}
}

// Lookup returns a non-owning reference to the item with the given
// identifier (spec.md §3's Manifest Item invariant 1 in spec.md §8).
func (m *Manifest) Lookup(id string) (*ManifestItem, bool) {
	item, ok := m.byID[id]
	return item, ok
}

// LookupByHref returns a non-owning reference to the item with the given
// href, matched exactly as written in the OPF's href attribute (SPEC_FULL
// §8); it is not the path ResolveHref produces.
func (m *Manifest) LookupByHref(href string) (*ManifestItem, bool) {
	item, ok := m.byHref[href]
	return item, ok
}

// Copy returns an owned deep copy of the item with the given identifier,
// so callers may hold it independently of the Publication's lifetime
// (spec.md §4.5's external "copy item with id" operation).
func (m *Manifest) Copy(id string) (ManifestItem, bool) {
	item, ok := m.byID[id]
	if !ok {
		return ManifestItem{}, false
	}
	return *item, true
}

// Len returns the number of distinct identifiers in the manifest.
func (m *Manifest) Len() int { return len(m.byID) }

// SpineItem is one reading-order entry (spec.md §3). ManifestItem is a
// non-owning back reference: it is only ever assigned a pointer obtained
// from a live Manifest lookup at parse time, and a Publication always
// keeps its Manifest alive at least as long as its Spine, so the pointer
// can never outlive its referent (spec.md §3's Spine Item invariant,
// DESIGN.md OQ-1).
type SpineItem struct {
	IDRef        string
	IsLinear     bool
	ManifestItem *ManifestItem
}

// Spine is the ordered default reading sequence (spec.md §3).
type Spine struct {
	items      []SpineItem
	linearized int
}

// Len returns the total number of spine items.
func (s *Spine) Len() int { return len(s.items) }

// LinearLen returns the number of linear spine items (spec.md §3's
// invariant: equals the count of items with IsLinear true).
func (s *Spine) LinearLen() int { return s.linearized }

// Items returns the spine items in document order. The returned slice
// must not be mutated by the caller.
func (s *Spine) Items() []SpineItem { return s.items }

func (s *Spine) append(item SpineItem) {
	s.items = append(s.items, item)
	if item.IsLinear {
		s.linearized++
	}
}

// Publication is the root aggregate (spec.md §3): it exclusively owns one
// Metadata, one Manifest, one Spine, and the archive handle that produced
// them.
type Publication struct {
	path    string
	archive *archive

	metadata *Metadata
	manifest *Manifest
	spine    *Spine

	entryCount   int
	allRootfiles []rootfileRef
	opfPath      string

	diagnostics diag.Sink
}

// Path returns the archive path this Publication was opened from.
func (p *Publication) Path() string { return p.path }

// EntryCount returns the number of entries in the archive.
func (p *Publication) EntryCount() int { return p.entryCount }

// Metadata returns the publication's Dublin Core record.
func (p *Publication) Metadata() *Metadata { return p.metadata }

// Manifest returns the publication's manifest.
func (p *Publication) Manifest() *Manifest { return p.manifest }

// Spine returns the publication's reading order.
func (p *Publication) Spine() *Spine { return p.spine }

// Title, Identifier, and Language forward to Metadata for convenience —
// the concept-level accessors named in spec.md §6.
func (p *Publication) Title() (string, bool)      { return p.metadata.Title() }
func (p *Publication) Identifier() (string, bool) { return p.metadata.Identifier() }
func (p *Publication) Language() (string, bool)   { return p.metadata.Language() }

// AllRootfiles returns the full-path of every <rootfile> element found in
// container.xml, in document order (SPEC_FULL §8). The read path still
// only ever acts on the first one; this is diagnostic visibility only.
func (p *Publication) AllRootfiles() []string {
	paths := make([]string, len(p.allRootfiles))
	for i, rf := range p.allRootfiles {
		paths[i] = rf.fullPath
	}
	return paths
}

// OPFPath returns the path of the OPF document this Publication was
// parsed from, relative to the archive root.
func (p *Publication) OPFPath() string { return p.opfPath }

// Diagnostics returns every tolerated anomaly recorded while opening this
// publication (spec.md §7's "surface as much as possible" policy).
func (p *Publication) Diagnostics() []diag.Message { return p.diagnostics.Messages }

// SequentialResourcePaths returns the hrefs of the linear spine items' resolved
// manifest items, in spine order (spec.md §6, §8 invariant 7). A spine
// item whose back reference is absent is skipped, not crashed on — OQ-2 in
// DESIGN.md. The parser recorded a diagnostic for each such item during
// Open, so this call leaves Diagnostics() unchanged.
func (p *Publication) SequentialResourcePaths() []string {
	paths := make([]string, 0, p.spine.LinearLen())
	for _, item := range p.spine.items {
		if !item.IsLinear {
			continue
		}
		if item.ManifestItem == nil {
			continue
		}
		paths = append(paths, item.ManifestItem.Href)
	}
	return paths
}

func spineLocation(index int, idref string) string {
	if idref == "" {
		return "spine[" + strconv.Itoa(index) + "]"
	}
	return "spine[" + strconv.Itoa(index) + "] idref=" + idref
}

// Close releases the archive handle. Safe to call more than once.
func (p *Publication) Close() error {
	if p.archive == nil {
		return nil
	}
	return p.archive.close()
}
