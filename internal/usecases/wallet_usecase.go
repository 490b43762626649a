package usecases

import (
	"context"
	"errors"
	"strings"

	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/domain/repositories"
	"synx.backend/internal/infrastructure/blockchain"
)

// WalletInfo is the read-only wallet view exposed over HTTP
type WalletInfo struct {
	Address   string `json:"address"`
	NetworkID string `json:"networkId"`
	Balance   string `json:"balance"` // wei, decimal string
}

// WalletUsecase exposes a user's provisioned wallet state
type WalletUsecase struct {
	userRepo      repositories.UserRepository
	clientFactory *blockchain.ClientFactory
	rpcURL        string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(userRepo repositories.UserRepository, clientFactory *blockchain.ClientFactory, rpcURL string) *WalletUsecase {
	return &WalletUsecase{
		userRepo:      userRepo,
		clientFactory: clientFactory,
		rpcURL:        rpcURL,
	}
}

// GetWallet returns the user's wallet address, network, and live balance.
// Users without a provisioned wallet get NotFound; the wallet appears after
// their first chat.
func (u *WalletUsecase) GetWallet(ctx context.Context, userID string) (*WalletInfo, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.BadRequest("userId is required")
	}

	material, err := u.userRepo.GetWalletMaterial(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("wallet not provisioned")
		}
		return nil, err
	}

	client, err := u.clientFactory.GetEVMClient(u.rpcURL)
	if err != nil {
		return nil, domainerrors.Upstream("failed to reach chain RPC", err)
	}

	balance, err := client.GetBalance(ctx, material.WalletID)
	if err != nil {
		return nil, domainerrors.Upstream("failed to read wallet balance", err)
	}

	return &WalletInfo{
		Address:   material.WalletID,
		NetworkID: material.NetworkID,
		Balance:   balance.String(),
	}, nil
}
