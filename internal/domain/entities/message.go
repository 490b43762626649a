package entities

import (
	"time"

	"github.com/google/uuid"
)

// MessageSender identifies which side of the conversation wrote a message
type MessageSender string

const (
	SenderUser      MessageSender = "user"
	SenderAssistant MessageSender = "assistant"
)

// Message represents one turn of a conversation. Messages are immutable once
// written and replayed ordered by Timestamp.
type Message struct {
	ID        uuid.UUID     `json:"id"`
	ChatID    string        `json:"chatId"`
	Sender    MessageSender `json:"sender"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
}

// ChatRequest is the body of the streaming chat endpoint
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	UserID         string `json:"userId" binding:"required"`
	ChatID         string `json:"chatId" binding:"required"`
	IsFirstMessage bool   `json:"isFirstMessage"`
}
