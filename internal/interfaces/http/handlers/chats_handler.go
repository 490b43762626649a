package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/interfaces/http/response"
)

// ChatCollectionService is the slice of chat usecase behavior the chat
// collection endpoints need.
type ChatCollectionService interface {
	CreateChat(ctx context.Context, input *entities.CreateChatInput) (*entities.Chat, error)
	ListChats(ctx context.Context, userID string) ([]*entities.ChatSummary, error)
	RenameChat(ctx context.Context, chatID, title string) (*entities.Chat, error)
	DeleteChat(ctx context.Context, chatID string) error
}

// ChatsHandler handles chat collection endpoints
type ChatsHandler struct {
	chatUsecase ChatCollectionService
}

// NewChatsHandler creates a new chats handler
func NewChatsHandler(chatUsecase ChatCollectionService) *ChatsHandler {
	return &ChatsHandler{chatUsecase: chatUsecase}
}

// List returns a user's chats, most recently active first
// GET /chats?userId=
func (h *ChatsHandler) List(c *gin.Context) {
	userID := c.Query("userId")

	chats, err := h.chatUsecase.ListChats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, chats)
}

// Create creates a chat explicitly
// POST /chats
func (h *ChatsHandler) Create(c *gin.Context) {
	var input entities.CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("chatId and userId are required"))
		return
	}

	chat, err := h.chatUsecase.CreateChat(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, chat)
}

// Update renames a chat
// PATCH /chats/:chatId
func (h *ChatsHandler) Update(c *gin.Context) {
	var input entities.UpdateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("title is required"))
		return
	}

	chat, err := h.chatUsecase.RenameChat(c.Request.Context(), c.Param("chatId"), input.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, chat)
}

// Delete removes a chat and its messages
// DELETE /chats/:chatId
func (h *ChatsHandler) Delete(c *gin.Context) {
	if err := h.chatUsecase.DeleteChat(c.Request.Context(), c.Param("chatId")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
