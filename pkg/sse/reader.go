package sse

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EventKind tags a decoded record
type EventKind string

const (
	KindDelta EventKind = "delta" // append Text to the in-progress message
	KindReset EventKind = "reset" // replace the in-progress message with Text
	KindTool  EventKind = "tool"  // structured tool result; Text is the summary
	KindError EventKind = "error" // in-band failure; the turn is over
	KindDone  EventKind = "done"  // terminal sentinel
)

// Event is one decoded logical record
type Event struct {
	Kind EventKind
	Text string
	Tool *ToolResult
}

var recordSeparator = []byte("\n\n")

// Decoder reconstructs logical records from a byte stream delivered in
// arbitrary chunks. Partial records are buffered until the double line-break
// boundary arrives, so a record split across network reads parses the same as
// one delivered whole.
type Decoder struct {
	buf bytes.Buffer
}

// NewDecoder creates an empty decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk and returns every record completed by it, in order.
func (d *Decoder) Feed(chunk []byte) []Event {
	d.buf.Write(chunk)

	var events []Event
	for {
		raw := d.buf.Bytes()
		idx := bytes.Index(raw, recordSeparator)
		if idx < 0 {
			return events
		}

		record := make([]byte, idx)
		copy(record, raw[:idx])
		d.buf.Next(idx + len(recordSeparator))

		if ev, ok := parseRecord(record); ok {
			events = append(events, ev)
		}
	}
}

// parseRecord interprets one complete record. The payload is tried as each
// structured variant in turn and falls through to plain text, so exception-y
// JSON-or-not guessing stays out of the callers.
func parseRecord(record []byte) (Event, bool) {
	var dataLines []string
	for _, line := range strings.Split(string(record), "\n") {
		if !strings.HasPrefix(line, "data:") {
			continue // comments and unknown fields are ignored
		}
		dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
	}
	if len(dataLines) == 0 {
		return Event{}, false
	}
	payload := strings.Join(dataLines, "\n")

	if payload == DoneSentinel {
		return Event{Kind: KindDone}, true
	}

	var probe struct {
		Tool       string          `json:"tool"`
		Summary    string          `json:"your_summary"`
		Parameters *TransferParams `json:"parameters"`
		Error      *string         `json:"error"`
		Content    *string         `json:"content"`
		Reset      bool            `json:"reset"`
	}
	if err := json.Unmarshal([]byte(payload), &probe); err == nil {
		switch {
		case probe.Tool != "" && probe.Parameters != nil:
			return Event{
				Kind: KindTool,
				Text: probe.Summary,
				Tool: &ToolResult{
					Tool:       probe.Tool,
					Summary:    probe.Summary,
					Parameters: *probe.Parameters,
				},
			}, true
		case probe.Error != nil:
			return Event{Kind: KindError, Text: *probe.Error}, true
		case probe.Content != nil:
			kind := KindDelta
			if probe.Reset {
				kind = KindReset
			}
			return Event{Kind: kind, Text: *probe.Content}, true
		}
	}

	// Not a known structured shape: plain text delta.
	return Event{Kind: KindDelta, Text: payload}, true
}
