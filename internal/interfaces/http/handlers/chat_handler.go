package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/interfaces/http/middleware"
	"synx.backend/internal/interfaces/http/response"
	"synx.backend/pkg/logger"
	"synx.backend/pkg/sse"
)

// streamFailureMessage is the in-band error payload sent once SSE headers
// are already out and the HTTP status can no longer change.
const streamFailureMessage = "Error processing response"

// ChatTurnService is the slice of chat usecase behavior the streaming
// endpoint needs.
type ChatTurnService interface {
	EnsureChat(ctx context.Context, chatID, userID, firstMessage string) error
	AppendUserMessage(ctx context.Context, chatID, content string) (*entities.Message, error)
	AppendAssistantMessage(ctx context.Context, chatID, content string) (*entities.Message, error)
	GetMessages(ctx context.Context, chatID string) ([]*entities.Message, error)
}

// SessionService hands out per-user agent sessions
type SessionService interface {
	SessionFor(ctx context.Context, userID string) (entities.Agent, error)
}

// ChatHandler handles the streaming chat endpoint and message history
type ChatHandler struct {
	chatUsecase ChatTurnService
	sessions    SessionService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatUsecase ChatTurnService, sessions SessionService) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		sessions:    sessions,
	}
}

// Stream handles one conversation turn
// POST /chat
func (h *ChatHandler) Stream(c *gin.Context) {
	var req entities.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest("message, userId and chatId are required"))
		return
	}

	ctx := c.Request.Context()

	// Everything that can fail with a clean HTTP status happens before the
	// first streamed byte.
	if req.IsFirstMessage {
		if err := h.chatUsecase.EnsureChat(ctx, req.ChatID, req.UserID, req.Message); err != nil {
			response.Error(c, err)
			return
		}
	}

	if _, err := h.chatUsecase.AppendUserMessage(ctx, req.ChatID, req.Message); err != nil {
		response.Error(c, err)
		return
	}

	session, err := h.sessions.SessionFor(ctx, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	events, err := session.Stream(ctx, req.ChatID, req.Message)
	if err != nil {
		response.Error(c, domainerrors.Upstream("failed to start agent stream", err))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	sw := sse.NewWriter(c.Writer)
	for ev := range events {
		if ev.Err != nil {
			logger.Error(ctx, "agent stream failed mid-turn",
				zap.String("chat_id", req.ChatID), zap.Error(ev.Err))
			_ = sw.WriteError(streamFailureMessage)
			middleware.StreamTurnsTotal.WithLabelValues("error").Inc()
			return
		}

		frag := ev.Fragment
		if frag == nil {
			continue
		}
		if frag.Tool != nil {
			err = sw.WriteTool(frag.Tool)
		} else {
			err = sw.WriteContent(frag.Content)
		}
		if err != nil {
			// Client went away; nothing left to write to.
			logger.Warn(ctx, "chat stream write failed", zap.String("chat_id", req.ChatID), zap.Error(err))
			middleware.StreamTurnsTotal.WithLabelValues("error").Inc()
			return
		}
		middleware.StreamFragmentsTotal.Inc()
	}

	// The assistant message lands in the store before the client sees DONE.
	if text := sw.Assembled(); text != "" {
		if _, err := h.chatUsecase.AppendAssistantMessage(ctx, req.ChatID, text); err != nil {
			logger.Error(ctx, "failed to persist assistant message",
				zap.String("chat_id", req.ChatID), zap.Error(err))
			_ = sw.WriteError(streamFailureMessage)
			middleware.StreamTurnsTotal.WithLabelValues("error").Inc()
			return
		}
	}

	_ = sw.WriteDone()
	middleware.StreamTurnsTotal.WithLabelValues("done").Inc()
}

// GetMessages returns a chat's messages oldest first
// GET /chat?chatId=
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID := c.Query("chatId")
	if chatID == "" {
		response.Error(c, domainerrors.BadRequest("chatId is required"))
		return
	}

	messages, err := h.chatUsecase.GetMessages(c.Request.Context(), chatID)
	if err != nil {
		response.Error(c, err)
		return
	}

	type messageResponse struct {
		ID        uuid.UUID `json:"id"`
		Content   string    `json:"content"`
		Sender    string    `json:"sender"`
		Timestamp time.Time `json:"timestamp"`
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageResponse{
			ID:        m.ID,
			Content:   m.Content,
			Sender:    string(m.Sender),
			Timestamp: m.Timestamp,
		})
	}
	response.Success(c, http.StatusOK, out)
}
