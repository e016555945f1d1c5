package epub

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/adammathes/epubread/pkg/diag"
)

// defaultMaxStackDepth bounds the parse context stack (spec.md §4.4).
// Exceeding it is a parse error, not a panic or silent truncation.
const defaultMaxStackDepth = 64

// state is one of the four OPF parser states (spec.md §4.4).
type state int

const (
	stateRoot state = iota
	stateMetadata
	stateManifest
	stateSpine
)

// frame is one parse context stack entry: the state the element opened
// into, its local name (used to match the closing tag), and — for
// metadata leaf elements — whether the next text event is meaningful.
// Go's garbage collector owns the frame's memory, so unlike the C source
// there is no leak to introduce on a branch that forgets to free it
// (DESIGN.md OQ-3).
type frame struct {
	state             state
	tag               string
	shouldCaptureText bool
	text              string
}

// opfParser drives encoding/xml's pull-style Decoder.Token() through the
// explicit bounded state stack spec.md §4.4 requires, grounded in the
// teacher's scanOPFStructure/parseMetadata token loops (pkg/epub/reader.go)
// but restructured around discrete states instead of ad hoc booleans.
type opfParser struct {
	decoder  *xml.Decoder
	stack    []frame
	maxDepth int

	metadata *Metadata
	manifest *Manifest
	spine    *Spine

	opfDir      string
	diagnostics *diag.Sink
}

// parseOPF parses the OPF document in data and populates a fresh
// Metadata/Manifest/Spine. opfDir is the directory containing the OPF
// file, used to resolve manifest item hrefs (SPEC_FULL §8).
func parseOPF(data []byte, opfDir string, maxDepth int, diagnostics *diag.Sink) (*Metadata, *Manifest, *Spine, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxStackDepth
	}
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false // recovery mode: lexical errors don't abort parsing (spec.md §4.4)

	p := &opfParser{
		decoder:     decoder,
		maxDepth:    maxDepth,
		metadata:    &Metadata{},
		manifest:    newManifest(),
		spine:       &Spine{},
		opfDir:      opfDir,
		diagnostics: diagnostics,
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, newError("parseOPF", XMLParseError, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if perr := p.handleStart(t); perr != nil {
				return nil, nil, nil, perr
			}
		case xml.EndElement:
			p.handleEnd(t)
		case xml.CharData:
			p.handleText(string(t))
		case xml.Comment:
			// comments are ignored (spec.md §4.4)
		}
	}

	return p.metadata, p.manifest, p.spine, nil
}

func (p *opfParser) currentState() state {
	if len(p.stack) == 0 {
		return stateRoot
	}
	return p.stack[len(p.stack)-1].state
}

func (p *opfParser) push(f frame) error {
	if len(p.stack) >= p.maxDepth {
		return newError("parseOPF", XMLParseError, nil)
	}
	p.stack = append(p.stack, f)
	return nil
}

func (p *opfParser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *opfParser) handleStart(se xml.StartElement) error {
	switch p.currentState() {
	case stateRoot:
		return p.handleRootStart(se)
	case stateMetadata:
		return p.handleMetadataStart(se)
	case stateManifest:
		return p.handleManifestStart(se)
	case stateSpine:
		return p.handleSpineStart(se)
	}
	return nil
}

// handleRootStart implements spec.md §4.4's Root state transitions.
func (p *opfParser) handleRootStart(se xml.StartElement) error {
	switch se.Name.Local {
	case "package":
		if id := attrValue(se, "unique-identifier"); id != "" {
			p.metadata.uniqueIdentifierID = id
		}
		// does not push; remains in Root
		return nil
	case "metadata":
		return p.push(frame{state: stateMetadata, tag: se.Name.Local})
	case "manifest":
		return p.push(frame{state: stateManifest, tag: se.Name.Local})
	case "spine":
		return p.push(frame{state: stateSpine, tag: se.Name.Local})
	default:
		// all other elements ignored, and not pushed: a stray element at
		// the top level can't unbalance the stack since it has no frame
		// to pop.
		return nil
	}
}

// handleMetadataStart implements spec.md §4.4's Metadata state behavior.
func (p *opfParser) handleMetadataStart(se xml.StartElement) error {
	switch se.Name.Local {
	case "title", "identifier", "language":
		shouldCapture := true
		if se.Name.Local == "identifier" {
			id := attrValue(se, "id")
			if id == "" {
				shouldCapture = false
			} else if id != p.metadata.uniqueIdentifierID {
				shouldCapture = false
			}
		}
		return p.push(frame{state: stateMetadata, tag: se.Name.Local, shouldCaptureText: shouldCapture})
	default:
		// unknown wrapper inside metadata: push, ignore content, pop on
		// the matching end-element (forward compatibility, spec.md §4.4).
		return p.push(frame{state: stateMetadata, tag: se.Name.Local})
	}
}

// handleManifestStart implements spec.md §4.4's Manifest state behavior.
func (p *opfParser) handleManifestStart(se xml.StartElement) error {
	if se.Name.Local == "item" {
		p.handleManifestItem(se)
		return nil // item is self-closing by schema; never pushed
	}
	return p.push(frame{state: stateManifest, tag: se.Name.Local})
}

func (p *opfParser) handleManifestItem(se xml.StartElement) {
	id := attrValue(se, "id")
	if id == "" {
		p.diagnostics.Add(diag.Info, "manifest.missing-id", "item element has no id attribute; skipped")
		return
	}
	item := &ManifestItem{
		ID:         id,
		Href:       attrValue(se, "href"),
		MediaType:  attrValue(se, "media-type"),
		Properties: attrValue(se, "properties"),
		opfDir:     p.opfDir,
	}
	p.manifest.insert(item)
}

// handleSpineStart implements spec.md §4.4's Spine state behavior. Frames
// pushed from inside <spine> always carry stateSpine — the C source's
// copy-paste of the manifest state constant here is the bug spec.md §9
// (DESIGN.md OQ-4) explicitly asks us not to reproduce.
func (p *opfParser) handleSpineStart(se xml.StartElement) error {
	if se.Name.Local == "itemref" {
		p.handleSpineItemref(se)
		return nil // itemref is self-closing by schema; never pushed
	}
	return p.push(frame{state: stateSpine, tag: se.Name.Local})
}

func (p *opfParser) handleSpineItemref(se xml.StartElement) {
	linear := attrValue(se, "linear")
	isLinear := linear == "" || linear == "yes"

	idref := attrValue(se, "idref")
	item := SpineItem{IDRef: idref, IsLinear: isLinear}

	switch {
	case idref == "":
		p.diagnostics.AddWithLocation(diag.Info, "spine.missing-idref",
			"itemref element has no idref attribute", spineLocation(p.spine.Len(), idref))
	default:
		if mi, ok := p.manifest.Lookup(idref); ok {
			item.ManifestItem = mi
		} else {
			p.diagnostics.AddWithLocation(diag.Warning, "spine.dangling-idref",
				"itemref idref does not match any manifest item", spineLocation(p.spine.Len(), idref))
		}
	}

	p.spine.append(item)
}

func (p *opfParser) handleEnd(ee xml.EndElement) {
	if len(p.stack) == 0 {
		return
	}
	if p.stack[len(p.stack)-1].tag != ee.Name.Local {
		// A self-closing leaf (item, itemref) or an unmatched stray
		// end-element: never pops a frame it didn't open.
		return
	}
	p.pop()
}

// handleText implements spec.md §4.4's metadata text capture: text events
// within the same element are appended to one another (handles text split
// across multiple CharData tokens, e.g. around character references), and
// a later element of the same kind overwrites the value an earlier one
// captured, so the last captured element wins.
func (p *opfParser) handleText(s string) {
	if len(p.stack) == 0 {
		return
	}
	top := &p.stack[len(p.stack)-1]
	if top.state != stateMetadata || !top.shouldCaptureText {
		return
	}
	top.text += s

	switch top.tag {
	case "title":
		p.metadata.title = top.text
		p.metadata.hasTitle = true
	case "identifier":
		p.metadata.identifier = top.text
		p.metadata.hasIdent = true
	case "language":
		p.metadata.language = top.text
		p.metadata.hasLang = true
	}
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
