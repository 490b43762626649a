package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/infrastructure/models"
)

// ChatRepository implements chat data operations
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create creates a new chat row. A uniqueness violation on the chat id maps
// to ErrAlreadyExists so callers can decide whether the race is benign.
func (r *ChatRepository) Create(ctx context.Context, chat *entities.Chat) error {
	now := time.Now()
	m := &models.Chat{
		ID:        chat.ID,
		UserID:    chat.UserID,
		Title:     chat.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	chat.CreatedAt = now
	chat.UpdatedAt = now
	return nil
}

// GetByID gets a chat by id
func (r *ChatRepository) GetByID(ctx context.Context, id string) (*entities.Chat, error) {
	var m models.Chat
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toChatEntity(&m), nil
}

// ListByUserID lists chat summaries for a user, most recently updated first
func (r *ChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entities.ChatSummary, error) {
	var chatModels []models.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chatModels).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]*entities.ChatSummary, 0, len(chatModels))
	for _, m := range chatModels {
		summaries = append(summaries, &entities.ChatSummary{
			ID:        m.ID,
			Title:     m.Title,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return summaries, nil
}

// UpdateTitle renames a chat and returns the updated row
func (r *ChatRepository) UpdateTitle(ctx context.Context, id, title string) (*entities.Chat, error) {
	result := r.db.WithContext(ctx).Model(&models.Chat{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Touch bumps the chat's updated_at so it sorts to the top of the sidebar
func (r *ChatRepository) Touch(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Chat{}).
		Where("id = ?", id).
		Update("updated_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a chat and all of its messages
func (r *ChatRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Chat{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	})
}

func toChatEntity(m *models.Chat) *entities.Chat {
	return &entities.Chat{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
