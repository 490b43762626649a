package repositories

import (
	"context"

	"synx.backend/internal/domain/entities"
)

// ChatRepository defines chat data operations
type ChatRepository interface {
	Create(ctx context.Context, chat *entities.Chat) error
	GetByID(ctx context.Context, id string) (*entities.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entities.ChatSummary, error)
	UpdateTitle(ctx context.Context, id, title string) (*entities.Chat, error)
	Touch(ctx context.Context, id string) error
	// Delete removes the chat and cascades to its messages.
	Delete(ctx context.Context, id string) error
}

// MessageRepository defines message data operations
type MessageRepository interface {
	Create(ctx context.Context, msg *entities.Message) error
	ListByChatID(ctx context.Context, chatID string) ([]*entities.Message, error)
}
