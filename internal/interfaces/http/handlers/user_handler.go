package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/interfaces/http/response"
)

// UserService upserts users on login
type UserService interface {
	CreateOrUpdateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error)
}

// UserHandler handles user identity endpoints
type UserHandler struct {
	userUsecase UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase UserService) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// CreateUser upserts a user on login. Idempotent by DID.
// POST /createUser
func (h *UserHandler) CreateUser(c *gin.Context) {
	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("did is required"))
		return
	}

	user, err := h.userUsecase.CreateOrUpdateUser(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}
