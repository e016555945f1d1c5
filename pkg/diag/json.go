package diag

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the sink in JSON form to w.
func (s *Sink) WriteJSON(w io.Writer) error {
	out := *s
	if out.Messages == nil {
		out.Messages = []Message{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
