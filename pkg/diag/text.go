package diag

import (
	"fmt"
	"io"
)

// WriteText writes one human-readable line per diagnostic to w.
func (s *Sink) WriteText(w io.Writer) {
	for _, m := range s.Messages {
		fmt.Fprintln(w, m.String())
	}
	if s.Clean() {
		fmt.Fprintln(w, "No diagnostics.")
	}
}
