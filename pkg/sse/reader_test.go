package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStream = "data: {\"content\":\"Hel\"}\n\n" +
	"data: {\"content\":\"lo\"}\n\n" +
	"data: {\"tool\":\"nativeTransfer\",\"your_summary\":\"Sent 0.5 ETH\",\"parameters\":{\"amount\":\"0.5\",\"to\":\"0xdest\",\"txHash\":\"0xfeed\"}}\n\n" +
	"data: [DONE]\n\n"

func TestDecoder_SingleChunk(t *testing.T) {
	events := NewDecoder().Feed([]byte(sampleStream))
	require.Len(t, events, 4)
	assert.Equal(t, KindDelta, events[0].Kind)
	assert.Equal(t, "Hel", events[0].Text)
	assert.Equal(t, KindDelta, events[1].Kind)
	assert.Equal(t, KindTool, events[2].Kind)
	assert.Equal(t, KindDone, events[3].Kind)
}

// Splitting the identical byte stream at every possible boundary, including
// mid-record, must reconstruct the identical event sequence.
func TestDecoder_ChunkSplitInvariance(t *testing.T) {
	want := NewDecoder().Feed([]byte(sampleStream))

	for split := 1; split < len(sampleStream); split++ {
		dec := NewDecoder()
		var got []Event
		got = append(got, dec.Feed([]byte(sampleStream[:split]))...)
		got = append(got, dec.Feed([]byte(sampleStream[split:]))...)
		require.Equal(t, want, got, "split at byte %d", split)
	}
}

func TestDecoder_OneByteAtATime(t *testing.T) {
	want := NewDecoder().Feed([]byte(sampleStream))

	dec := NewDecoder()
	var got []Event
	for i := 0; i < len(sampleStream); i++ {
		got = append(got, dec.Feed([]byte{sampleStream[i]})...)
	}
	assert.Equal(t, want, got)
}

func TestDecoder_ToolRecordNeverRendersRawJSON(t *testing.T) {
	record := "data: {\"tool\":\"nativeTransfer\",\"your_summary\":\"S\",\"parameters\":{\"amount\":\"1\",\"to\":\"0xa\",\"txHash\":\"0xb\"}}\n\n"

	tr := NewTranscript()
	tr.ApplyAll(NewDecoder().Feed([]byte(record)))

	assert.Equal(t, "S", tr.Text())
	require.NotNil(t, tr.Transfer())
	assert.Equal(t, "1", tr.Transfer().Amount)
	assert.Equal(t, "0xa", tr.Transfer().To)
	assert.Equal(t, "0xb", tr.Transfer().TxHash)
	assert.NotContains(t, tr.Text(), "{")
}

func TestDecoder_ErrorRecord(t *testing.T) {
	tr := NewTranscript()
	tr.ApplyAll(NewDecoder().Feed([]byte("data: {\"content\":\"partial\"}\n\ndata: {\"error\":\"Error processing response\"}\n\n")))

	assert.True(t, tr.Done())
	assert.True(t, tr.Failed())
	assert.Equal(t, FailureText, tr.Text())
}

func TestDecoder_DoneStopsFurtherAppends(t *testing.T) {
	tr := NewTranscript()
	tr.ApplyAll(NewDecoder().Feed([]byte("data: {\"content\":\"final\"}\n\ndata: [DONE]\n\ndata: {\"content\":\"late\"}\n\n")))

	assert.True(t, tr.Done())
	assert.False(t, tr.Failed())
	assert.Equal(t, "final", tr.Text())
}

func TestDecoder_ResetReplacesText(t *testing.T) {
	tr := NewTranscript()
	tr.ApplyAll(NewDecoder().Feed([]byte("data: {\"content\":\"old\"}\n\ndata: {\"content\":\"brand new\",\"reset\":true}\n\n")))

	assert.Equal(t, "brand new", tr.Text())
}

func TestDecoder_PlainTextFallback(t *testing.T) {
	events := NewDecoder().Feed([]byte("data: just plain words\n\n"))
	require.Len(t, events, 1)
	assert.Equal(t, KindDelta, events[0].Kind)
	assert.Equal(t, "just plain words", events[0].Text)

	// JSON of an unknown shape is also treated as text, not dropped.
	events = NewDecoder().Feed([]byte("data: {\"unknown\":true}\n\n"))
	require.Len(t, events, 1)
	assert.Equal(t, KindDelta, events[0].Kind)
}

func TestDecoder_IgnoresNonDataLines(t *testing.T) {
	events := NewDecoder().Feed([]byte(": keepalive comment\n\nevent: ping\n\ndata: hi\n\n"))
	require.Len(t, events, 1)
	assert.Equal(t, "hi", events[0].Text)
}

func TestDecoder_PartialRecordStaysBuffered(t *testing.T) {
	dec := NewDecoder()
	assert.Empty(t, dec.Feed([]byte("data: {\"content\":\"half")))
	events := dec.Feed([]byte("\"}\n\n"))
	require.Len(t, events, 1)
	assert.Equal(t, "half", events[0].Text)
}
