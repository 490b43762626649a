package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/volatiletech/null/v8"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/domain/repositories"
)

// UserUsecase handles user identity business logic
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// CreateOrUpdateUser upserts a user keyed by the identity-provider DID.
// Repeated calls are idempotent; the latest call's email wins, including an
// absent one, which clears a stored address.
func (u *UserUsecase) CreateOrUpdateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	did := strings.TrimSpace(input.DID)
	if did == "" {
		return nil, domainerrors.BadRequest("did is required")
	}

	user := &entities.User{ID: did}
	if input.Email != "" {
		user.Email = null.StringFrom(input.Email)
	}
	return u.userRepo.Upsert(ctx, user)
}

// GetUser returns a user by DID
func (u *UserUsecase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
