package entities

import "time"

// Chat represents one conversation owned by a user. IDs are client-generated
// opaque strings so the UI can navigate to a chat before the first message.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatSummary is the sidebar listing shape
type ChatSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateChatInput represents input for explicit chat creation
type CreateChatInput struct {
	ChatID string `json:"chatId" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Title  string `json:"title"`
}

// UpdateChatInput represents input for renaming a chat
type UpdateChatInput struct {
	Title string `json:"title" binding:"required"`
}
