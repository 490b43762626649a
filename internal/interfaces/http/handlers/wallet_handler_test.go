package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/usecases"
)

type walletServiceStub struct {
	getFn func(ctx context.Context, userID string) (*usecases.WalletInfo, error)
}

func (s *walletServiceStub) GetWallet(ctx context.Context, userID string) (*usecases.WalletInfo, error) {
	return s.getFn(ctx, userID)
}

func getWallet(stub *walletServiceStub, target string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/wallet", NewWalletHandler(stub).GetWallet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetWallet(t *testing.T) {
	stub := &walletServiceStub{getFn: func(ctx context.Context, userID string) (*usecases.WalletInfo, error) {
		require.Equal(t, "did:u", userID)
		return &usecases.WalletInfo{Address: "0xabc", NetworkID: "base-sepolia", Balance: "1000"}, nil
	}}

	w := getWallet(stub, "/wallet?userId=did:u")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"address":"0xabc"`)
	assert.Contains(t, w.Body.String(), `"networkId":"base-sepolia"`)
}

func TestGetWallet_NotProvisioned(t *testing.T) {
	stub := &walletServiceStub{getFn: func(ctx context.Context, userID string) (*usecases.WalletInfo, error) {
		return nil, domainerrors.NotFound("wallet not provisioned")
	}}

	w := getWallet(stub, "/wallet?userId=did:u")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
