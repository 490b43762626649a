package agent

import (
	"context"

	"github.com/stretchr/testify/mock"
	"synx.backend/internal/domain/entities"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) SetWalletMaterial(ctx context.Context, userID string, material *entities.WalletMaterial) error {
	args := m.Called(ctx, userID, material)
	return args.Error(0)
}

func (m *MockUserRepository) GetWalletMaterial(ctx context.Context, userID string) (*entities.WalletMaterial, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WalletMaterial), args.Error(1)
}
