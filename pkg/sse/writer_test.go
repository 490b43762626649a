package sse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_CumulativeDeltasReassemble(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// Each fragment is a prefix extension of the previous one.
	fragments := []string{"Hel", "Hello", "Hello, wor", "Hello, world!"}
	for _, f := range fragments {
		require.NoError(t, w.WriteContent(f))
	}

	assert.Equal(t, "Hello, world!", w.Assembled())

	// Emitted deltas concatenate back to the final fragment exactly.
	dec := NewDecoder()
	var got strings.Builder
	for _, ev := range dec.Feed(buf.Bytes()) {
		require.Equal(t, KindDelta, ev.Kind)
		got.WriteString(ev.Text)
	}
	assert.Equal(t, "Hello, world!", got.String())
}

func TestWriter_RepeatAndEmptyContentEmitNothing(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteContent("abc"))
	mark := buf.Len()
	require.NoError(t, w.WriteContent("abc"))
	require.NoError(t, w.WriteContent(""))
	assert.Equal(t, mark, buf.Len())
}

func TestWriter_DiscontinuityEmitsFullContent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteContent("first answer"))
	require.NoError(t, w.WriteContent("совершенно другой ответ"))

	events := NewDecoder().Feed(buf.Bytes())
	require.Len(t, events, 2)
	assert.Equal(t, KindDelta, events[0].Kind)
	assert.Equal(t, KindReset, events[1].Kind)
	assert.Equal(t, "совершенно другой ответ", events[1].Text)
	assert.Equal(t, "совершенно другой ответ", w.Assembled())
}

func TestWriter_ToolResultRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteTool(&ToolResult{
		Tool:    "nativeTransfer",
		Summary: "Sent 0.01 ETH to 0xabc",
		Parameters: TransferParams{
			Amount: "0.01",
			To:     "0xabc",
			TxHash: "0xhash",
		},
	}))

	assert.Equal(t, "Sent 0.01 ETH to 0xabc", w.Assembled())
	assert.Contains(t, buf.String(), `"your_summary"`)
	assert.True(t, strings.HasPrefix(buf.String(), "data: "))
	assert.True(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestWriter_ContentAfterToolAppendsToSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteTool(&ToolResult{Tool: "nativeTransfer", Summary: "Done.", Parameters: TransferParams{}}))
	require.NoError(t, w.WriteContent("Done. Anything else?"))

	// Writer's assembled text mirrors decoder behavior: the summary replaced
	// the message, the following delta appends to it.
	assert.Equal(t, "Done. Anything else?", w.Assembled())

	tr := NewTranscript()
	tr.ApplyAll(NewDecoder().Feed(buf.Bytes()))
	assert.Equal(t, w.Assembled(), tr.Text())
}

func TestWriter_ErrorAndDoneRecords(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteError("Error processing response"))
	require.NoError(t, w.WriteDone())

	out := buf.String()
	assert.Contains(t, out, `data: {"error":"Error processing response"}`)
	assert.True(t, strings.HasSuffix(out, "data: [DONE]\n\n"))
}
