package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Writer encodes agent output fragments as SSE records. Fragments carry
// cumulative content, so the writer computes the suffix not yet sent and
// emits only that. It also tracks the text a decoder on the other end will
// have reconstructed, which is what gets persisted as the assistant message.
type Writer struct {
	w         io.Writer
	flusher   http.Flusher
	lastSent  string
	assembled string
}

// NewWriter wraps an output stream. When w is an http.ResponseWriter each
// record is flushed immediately so the client sees fragments as they happen.
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// WriteContent emits the delta between the cumulative content and what was
// already sent. When the new content does not extend the previous content (a
// discontinuity) the full content goes out as a fresh record flagged reset.
func (sw *Writer) WriteContent(cumulative string) error {
	if cumulative == "" || cumulative == sw.lastSent {
		return nil
	}

	if strings.HasPrefix(cumulative, sw.lastSent) {
		delta := cumulative[len(sw.lastSent):]
		if err := sw.writeRecord(textRecord{Content: delta}); err != nil {
			return err
		}
		sw.assembled += delta
		sw.lastSent = cumulative
		return nil
	}

	// Discontinuity: re-emit verbatim rather than a malformed delta.
	if err := sw.writeRecord(textRecord{Content: cumulative, Reset: true}); err != nil {
		return err
	}
	sw.assembled = cumulative
	sw.lastSent = cumulative
	return nil
}

// WriteTool emits one structured tool result record. The decoder replaces the
// visible message text with the summary, so the assembled text follows suit
// and later cumulative content is diffed against the summary.
func (sw *Writer) WriteTool(tr *ToolResult) error {
	if err := sw.writeRecord(tr); err != nil {
		return err
	}
	sw.assembled = tr.Summary
	sw.lastSent = tr.Summary
	return nil
}

// WriteError emits one in-band error record. Used for failures after the
// headers are already out, where the HTTP status can no longer change.
func (sw *Writer) WriteError(message string) error {
	return sw.writeRecord(errorRecord{Error: message})
}

// WriteDone emits the terminal sentinel. Callers persist the assembled
// message first so the client never observes DONE before the write landed.
func (sw *Writer) WriteDone() error {
	return sw.writeRaw(DoneSentinel)
}

// Assembled returns the assistant text exactly as a decoder reconstructs it
func (sw *Writer) Assembled() string {
	return sw.assembled
}

func (sw *Writer) writeRecord(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sw.writeRaw(string(data))
}

func (sw *Writer) writeRaw(payload string) error {
	if _, err := fmt.Fprintf(sw.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
	return nil
}
