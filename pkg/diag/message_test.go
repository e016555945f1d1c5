package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestSinkCleanAndCounts(t *testing.T) {
	var s Sink
	if !s.Clean() {
		t.Error("Clean() = false on empty sink, want true")
	}

	s.Add(Info, "test.info", "informational")
	if s.Clean() {
		t.Error("Clean() = true after Add, want false")
	}
	if s.WarningCount() != 0 {
		t.Errorf("WarningCount() = %d, want 0", s.WarningCount())
	}

	s.AddWithLocation(Warning, "test.warning", "something was skipped", "spine[2]")
	if s.WarningCount() != 1 {
		t.Errorf("WarningCount() = %d, want 1", s.WarningCount())
	}
	if len(s.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(s.Messages))
	}
}

func TestMessageString(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			"no location",
			Message{Level: Info, Code: "c", Text: "text"},
			"INFO(c): text",
		},
		{
			"with location",
			Message{Level: Warning, Code: "c", Text: "text", Location: "spine[0]"},
			"WARNING(c): text [spine[0]]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.msg.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteText(t *testing.T) {
	var s Sink
	var buf bytes.Buffer
	s.WriteText(&buf)
	if !strings.Contains(buf.String(), "No diagnostics.") {
		t.Errorf("WriteText(empty) = %q, want mention of no diagnostics", buf.String())
	}

	s.Add(Info, "test.info", "hello")
	buf.Reset()
	s.WriteText(&buf)
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("WriteText() = %q, want to contain message text", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var s Sink
	s.Add(Warning, "test.warn", "oops")

	var buf bytes.Buffer
	if err := s.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"code": "test.warn"`) {
		t.Errorf("WriteJSON() = %s, want to contain the message code", out)
	}
}

func TestWriteJSONEmptySinkEncodesEmptyArray(t *testing.T) {
	var s Sink
	var buf bytes.Buffer
	if err := s.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"messages": []`) {
		t.Errorf("WriteJSON(empty) = %s, want messages: []", buf.String())
	}
}
