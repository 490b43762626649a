package agent

import (
	"context"
	"encoding/json"
	"time"

	"synx.backend/pkg/redis"
)

const threadKeyPrefix = "agent:thread:"

// Turn is one remembered conversation exchange entry
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ThreadMemory keeps a rolling window of recent turns per conversation
// thread in Redis, so the model sees context across requests without
// replaying the whole chat from the database.
type ThreadMemory struct {
	window int
	ttl    time.Duration
}

// NewThreadMemory creates thread memory with the given window and TTL
func NewThreadMemory(window int, ttl time.Duration) *ThreadMemory {
	if window < 1 {
		window = 1
	}
	return &ThreadMemory{window: window, ttl: ttl}
}

// Append records one turn and trims the thread to the configured window
func (m *ThreadMemory) Append(ctx context.Context, threadID, role, text string) error {
	data, err := json.Marshal(Turn{Role: role, Text: text})
	if err != nil {
		return err
	}

	key := threadKeyPrefix + threadID
	if err := redis.RPush(ctx, key, string(data)); err != nil {
		return err
	}
	if err := redis.LTrim(ctx, key, int64(-m.window), -1); err != nil {
		return err
	}
	return redis.Expire(ctx, key, m.ttl)
}

// History returns the remembered turns, oldest first. Entries that fail to
// decode are skipped rather than poisoning the whole thread.
func (m *ThreadMemory) History(ctx context.Context, threadID string) ([]Turn, error) {
	entries, err := redis.LRange(ctx, threadKeyPrefix+threadID, 0, -1)
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		var turn Turn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// Forget drops a thread's memory, used when its chat is deleted
func (m *ThreadMemory) Forget(ctx context.Context, threadID string) error {
	return redis.Del(ctx, threadKeyPrefix+threadID)
}
