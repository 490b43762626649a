package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscript_DeltaThenToolThenDelta(t *testing.T) {
	tr := NewTranscript()
	tr.Apply(Event{Kind: KindDelta, Text: "Working on it"})
	tr.Apply(Event{
		Kind: KindTool,
		Text: "Sent 1 ETH to 0xdest",
		Tool: &ToolResult{
			Tool:       "nativeTransfer",
			Summary:    "Sent 1 ETH to 0xdest",
			Parameters: TransferParams{Amount: "1", To: "0xdest", TxHash: "0xhash"},
		},
	})
	tr.Apply(Event{Kind: KindDelta, Text: " Anything else?"})

	assert.Equal(t, "Sent 1 ETH to 0xdest Anything else?", tr.Text())
	assert.Equal(t, "0xhash", tr.Transfer().TxHash)
	assert.False(t, tr.Done())
}

func TestTranscript_ToolWithoutPayloadKeepsSummaryOnly(t *testing.T) {
	tr := NewTranscript()
	tr.Apply(Event{Kind: KindTool, Text: "summary only"})

	assert.Equal(t, "summary only", tr.Text())
	assert.Nil(t, tr.Transfer())
}

func TestTranscript_ErrorIsTerminal(t *testing.T) {
	tr := NewTranscript()
	tr.Apply(Event{Kind: KindDelta, Text: "so far"})
	tr.Apply(Event{Kind: KindError, Text: "upstream failed"})
	tr.Apply(Event{Kind: KindDelta, Text: "ignored"})

	assert.True(t, tr.Done())
	assert.True(t, tr.Failed())
	assert.Equal(t, FailureText, tr.Text())
}
