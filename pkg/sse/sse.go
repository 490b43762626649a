// Package sse implements the chat streaming wire protocol: agent output
// fragments encoded as Server-Sent-Events records on the way out, and
// incremental reconstruction of those records on the way in. One fragment
// becomes exactly one `data: ...\n\n` record; the stream ends with the
// `data: [DONE]` sentinel.
package sse

// DoneSentinel terminates a stream after the assistant message is persisted
const DoneSentinel = "[DONE]"

// TransferParams are the structured fields of a completed native transfer,
// surfaced to the confirmation display instead of raw chat text.
type TransferParams struct {
	Amount string `json:"amount"`
	To     string `json:"to"`
	TxHash string `json:"txHash"`
}

// ToolResult is the structured record emitted when the agent invoked an
// on-chain tool. Summary carries the natural-language text shown in the chat
// bubble; Parameters feed the side-channel confirmation display.
type ToolResult struct {
	Tool       string         `json:"tool"`
	Summary    string         `json:"your_summary"`
	Parameters TransferParams `json:"parameters"`
}

// textRecord is the shape of delta and reset records. Reset marks a
// discontinuity: the content replaces the in-progress message instead of
// extending it.
type textRecord struct {
	Content string `json:"content"`
	Reset   bool   `json:"reset,omitempty"`
}

// errorRecord is the in-band failure shape used once headers are sent
type errorRecord struct {
	Error string `json:"error"`
}
