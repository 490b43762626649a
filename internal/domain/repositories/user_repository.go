package repositories

import (
	"context"

	"synx.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	// Upsert creates the user on first login or refreshes the email on later
	// logins, keyed by the identity-provider id.
	Upsert(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	// SetWalletMaterial binds wallet material to a user. The binding happens
	// at most once: a user that already has wallet fields set is never
	// overwritten and the call fails with ErrAlreadyExists.
	SetWalletMaterial(ctx context.Context, userID string, material *entities.WalletMaterial) error
	GetWalletMaterial(ctx context.Context, userID string) (*entities.WalletMaterial, error)
}
