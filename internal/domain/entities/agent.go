package entities

import (
	"context"

	"synx.backend/pkg/sse"
)

// Fragment is one incremental unit of agent output: either reasoning text or
// a tool invocation result. Content is cumulative, mirroring how the
// orchestration library reports agent messages; the streaming encoder is
// responsible for turning it into deltas.
type Fragment struct {
	Content string
	Tool    *sse.ToolResult
}

// StreamEvent carries either a fragment or a terminal error on an agent
// stream. After an event with Err != nil the channel is closed.
type StreamEvent struct {
	Fragment *Fragment
	Err      error
}

// Agent is the capability interface over the external orchestration library:
// submit a message under a conversation-thread id and receive a lazy sequence
// of output fragments. Implementations close the channel when the turn ends.
type Agent interface {
	Stream(ctx context.Context, threadID, message string) (<-chan StreamEvent, error)
}
