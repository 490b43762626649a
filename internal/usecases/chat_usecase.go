package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/domain/repositories"
	"synx.backend/pkg/logger"
)

const (
	chatTitleMaxLen  = 50
	defaultChatTitle = "New Chat"
)

// ThreadForgetter drops a conversation thread's short-term memory
type ThreadForgetter interface {
	Forget(ctx context.Context, threadID string) error
}

// ChatUsecase handles chat and message business logic
type ChatUsecase struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	memory      ThreadForgetter
}

// NewChatUsecase creates a new chat usecase. memory may be nil when no
// short-term memory backend is wired.
func NewChatUsecase(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, memory ThreadForgetter) *ChatUsecase {
	return &ChatUsecase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		memory:      memory,
	}
}

// CreateChat creates a chat explicitly. Duplicate ids are a Conflict here,
// unlike the first-message path where the race is expected.
func (u *ChatUsecase) CreateChat(ctx context.Context, input *entities.CreateChatInput) (*entities.Chat, error) {
	if strings.TrimSpace(input.ChatID) == "" || strings.TrimSpace(input.UserID) == "" {
		return nil, domainerrors.BadRequest("chatId and userId are required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultChatTitle
	}

	chat := &entities.Chat{
		ID:     input.ChatID,
		UserID: input.UserID,
		Title:  title,
	}
	if err := u.chatRepo.Create(ctx, chat); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("chat already exists")
		}
		return nil, err
	}
	return chat, nil
}

// EnsureChat creates the chat carrying a conversation's first message. The
// title derives from that message. Two requests racing on the same chat id
// both succeed: whoever loses the insert simply uses the existing chat.
func (u *ChatUsecase) EnsureChat(ctx context.Context, chatID, userID, firstMessage string) error {
	chat := &entities.Chat{
		ID:     chatID,
		UserID: userID,
		Title:  deriveTitle(firstMessage),
	}
	err := u.chatRepo.Create(ctx, chat)
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		return nil
	}
	return err
}

// ListChats returns a user's chats, most recently active first
func (u *ChatUsecase) ListChats(ctx context.Context, userID string) ([]*entities.ChatSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.BadRequest("userId is required")
	}
	return u.chatRepo.ListByUserID(ctx, userID)
}

// GetMessages returns a chat's messages ordered oldest first
func (u *ChatUsecase) GetMessages(ctx context.Context, chatID string) ([]*entities.Message, error) {
	if strings.TrimSpace(chatID) == "" {
		return nil, domainerrors.BadRequest("chatId is required")
	}
	return u.messageRepo.ListByChatID(ctx, chatID)
}

// RenameChat updates a chat's title
func (u *ChatUsecase) RenameChat(ctx context.Context, chatID, title string) (*entities.Chat, error) {
	if strings.TrimSpace(title) == "" {
		return nil, domainerrors.BadRequest("title is required")
	}

	chat, err := u.chatRepo.UpdateTitle(ctx, chatID, title)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("chat not found")
		}
		return nil, err
	}
	return chat, nil
}

// DeleteChat removes a chat, its messages, and its thread memory
func (u *ChatUsecase) DeleteChat(ctx context.Context, chatID string) error {
	if err := u.chatRepo.Delete(ctx, chatID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("chat not found")
		}
		return err
	}

	if u.memory != nil {
		if err := u.memory.Forget(ctx, chatID); err != nil {
			logger.Warn(ctx, "failed to drop thread memory for deleted chat",
				zap.String("chat_id", chatID), zap.Error(err))
		}
	}
	return nil
}

// AppendUserMessage persists one user message and bumps the chat's activity
func (u *ChatUsecase) AppendUserMessage(ctx context.Context, chatID, content string) (*entities.Message, error) {
	return u.appendMessage(ctx, chatID, entities.SenderUser, content)
}

// AppendAssistantMessage persists one assistant message and bumps the chat's
// activity. Called exactly once per turn with the fully assembled text.
func (u *ChatUsecase) AppendAssistantMessage(ctx context.Context, chatID, content string) (*entities.Message, error) {
	return u.appendMessage(ctx, chatID, entities.SenderAssistant, content)
}

func (u *ChatUsecase) appendMessage(ctx context.Context, chatID string, sender entities.MessageSender, content string) (*entities.Message, error) {
	msg := &entities.Message{
		ChatID:    chatID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
	if err := u.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if err := u.chatRepo.Touch(ctx, chatID); err != nil {
		logger.Warn(ctx, "failed to touch chat after message",
			zap.String("chat_id", chatID), zap.Error(err))
	}
	return msg, nil
}

// deriveTitle trims a first message into a sidebar title
func deriveTitle(message string) string {
	title := strings.TrimSpace(message)
	if title == "" {
		return defaultChatTitle
	}
	runes := []rune(title)
	if len(runes) > chatTitleMaxLen {
		return string(runes[:chatTitleMaxLen])
	}
	return title
}
