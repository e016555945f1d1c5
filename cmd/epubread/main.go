// Command epubread opens a single EPUB 3 archive and prints a summary of
// its publication model: a human-readable report to stderr, and a JSON
// report to stdout for tool interop — the same split the teacher's CLI
// uses for its validation report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/adammathes/epubread/pkg/diag"
	"github.com/adammathes/epubread/pkg/epub"
)

const version = "0.1.0"

// summary is the JSON shape written to stdout.
type summary struct {
	Path        string         `json:"path"`
	EntryCount  int            `json:"entryCount"`
	OPFPath     string         `json:"opfPath"`
	Title       string         `json:"title,omitempty"`
	Identifier  string         `json:"identifier,omitempty"`
	Language    string         `json:"language,omitempty"`
	ManifestLen int            `json:"manifestLength"`
	SpineLen    int            `json:"spineLength"`
	LinearLen   int            `json:"spineLinearLength"`
	Diagnostics []diag.Message `json:"diagnostics"`
}

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	noMimetype := flag.Bool("no-mimetype-check", false, "skip the bootstrap mimetype validation")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: epubread <file.epub> [--no-mimetype-check] [--version]")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("epubread %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var opts []epub.Option
	if *noMimetype {
		opts = append(opts, epub.WithoutMimetypeCheck())
	}

	pub, err := epub.Open(flag.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(2)
	}
	defer pub.Close()

	writeTextSummary(os.Stderr, pub)

	s := summary{
		Path:        pub.Path(),
		EntryCount:  pub.EntryCount(),
		OPFPath:     pub.OPFPath(),
		ManifestLen: pub.Manifest().Len(),
		SpineLen:    pub.Spine().Len(),
		LinearLen:   pub.Spine().LinearLen(),
		Diagnostics: pub.Diagnostics(),
	}
	if v, ok := pub.Title(); ok {
		s.Title = v
	}
	if v, ok := pub.Identifier(); ok {
		s.Identifier = v
	}
	if v, ok := pub.Language(); ok {
		s.Language = v
	}
	if s.Diagnostics == nil {
		s.Diagnostics = []diag.Message{}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		os.Exit(2)
	}

	// Exit codes: 0=opened clean, 1=opened with diagnostics, 2=fatal.
	if len(pub.Diagnostics()) > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

func writeTextSummary(w *os.File, pub *epub.Publication) {
	fmt.Fprintf(w, "%s\n", pub.Path())
	if title, ok := pub.Title(); ok {
		fmt.Fprintf(w, "  title:      %s\n", title)
	}
	if id, ok := pub.Identifier(); ok {
		fmt.Fprintf(w, "  identifier: %s\n", id)
	}
	if lang, ok := pub.Language(); ok {
		fmt.Fprintf(w, "  language:   %s\n", lang)
	}
	fmt.Fprintf(w, "  manifest:   %d item(s)\n", pub.Manifest().Len())
	fmt.Fprintf(w, "  spine:      %d item(s), %d linear\n", pub.Spine().Len(), pub.Spine().LinearLen())

	var sink diag.Sink
	sink.Messages = pub.Diagnostics()
	sink.WriteText(w)
}
