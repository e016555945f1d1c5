// Package diag collects tolerated, non-fatal parse anomalies.
//
// The OPF parser surfaces as much of a malformed publication as it can
// (spec.md §7): a manifest item with no id, an itemref with no idref, and
// an itemref whose idref matches no manifest item do not abort parsing,
// and each one is recorded here instead, the same role pkg/report.Report
// plays for the teacher's validator, scaled down to informational
// severities only. Other tolerated conditions, such as an identifier
// element with no id attribute or an unknown element inside a known
// section, are passed over without a diagnostic.
package diag

import "fmt"

// Level is the severity of a tolerated diagnostic.
type Level string

const (
	// Info records a missing required attribute the parser stepped over
	// (e.g. a manifest item with no id, or an itemref with no idref).
	Info Level = "INFO"
	// Warning records a reference the parser could not resolve (e.g. an
	// itemref whose idref matches no manifest item).
	Warning Level = "WARNING"
)

// Message is a single tolerated diagnostic.
type Message struct {
	Level    Level  `json:"level"`
	Code     string `json:"code"`
	Text     string `json:"text"`
	Location string `json:"location,omitempty"`
}

func (m Message) String() string {
	if m.Location != "" {
		return fmt.Sprintf("%s(%s): %s [%s]", m.Level, m.Code, m.Text, m.Location)
	}
	return fmt.Sprintf("%s(%s): %s", m.Level, m.Code, m.Text)
}

// Sink accumulates diagnostics produced while opening a publication.
type Sink struct {
	Messages []Message `json:"messages"`
}

// Add appends a diagnostic with no location.
func (s *Sink) Add(level Level, code, text string) {
	s.Messages = append(s.Messages, Message{Level: level, Code: code, Text: text})
}

// AddWithLocation appends a diagnostic naming where in the document it occurred.
func (s *Sink) AddWithLocation(level Level, code, text, location string) {
	s.Messages = append(s.Messages, Message{Level: level, Code: code, Text: text, Location: location})
}

// WarningCount returns the number of WARNING-level diagnostics.
func (s *Sink) WarningCount() int {
	n := 0
	for _, m := range s.Messages {
		if m.Level == Warning {
			n++
		}
	}
	return n
}

// Clean reports whether no diagnostics were recorded.
func (s *Sink) Clean() bool {
	return len(s.Messages) == 0
}
