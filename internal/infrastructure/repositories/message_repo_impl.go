package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"synx.backend/internal/domain/entities"
	"synx.backend/internal/infrastructure/models"
)

// MessageRepository implements message data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists one message turn. Messages are immutable after this.
func (r *MessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	m := &models.Message{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		Sender:    string(msg.Sender),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// ListByChatID returns the messages of a chat ordered by creation time for
// replay. An unknown chat id yields an empty slice, matching the original
// history endpoint.
func (r *MessageRepository) ListByChatID(ctx context.Context, chatID string) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}

	messages := make([]*entities.Message, 0, len(messageModels))
	for _, m := range messageModels {
		messages = append(messages, &entities.Message{
			ID:        m.ID,
			ChatID:    m.ChatID,
			Sender:    entities.MessageSender(m.Sender),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return messages, nil
}
