package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"synx.backend/internal/interfaces/http/response"
	"synx.backend/internal/usecases"
)

// WalletService reads provisioned wallet state
type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*usecases.WalletInfo, error)
}

// WalletHandler exposes the agent wallet bound to a user
type WalletHandler struct {
	walletUsecase WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase WalletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetWallet returns the wallet's address, network, and balance
// GET /wallet?userId=
func (h *WalletHandler) GetWallet(c *gin.Context) {
	info, err := h.walletUsecase.GetWallet(c.Request.Context(), c.Query("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, info)
}
