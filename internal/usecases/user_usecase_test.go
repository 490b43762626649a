package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/usecases"
)

func TestCreateOrUpdateUser(t *testing.T) {
	users := new(MockUserRepository)
	users.On("Upsert", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.ID == "did:privy:abc" && u.Email.String == "a@example.com"
	})).Return(&entities.User{ID: "did:privy:abc", Email: null.StringFrom("a@example.com")}, nil)

	uc := usecases.NewUserUsecase(users)
	user, err := uc.CreateOrUpdateUser(context.Background(), &entities.CreateUserInput{
		DID:   "did:privy:abc",
		Email: "a@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "did:privy:abc", user.ID)
	users.AssertExpectations(t)
}

func TestCreateOrUpdateUser_MissingDID(t *testing.T) {
	uc := usecases.NewUserUsecase(new(MockUserRepository))

	_, err := uc.CreateOrUpdateUser(context.Background(), &entities.CreateUserInput{DID: "   "})
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestGetUser_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "did:nobody").Return(nil, domainerrors.ErrNotFound)

	uc := usecases.NewUserUsecase(users)
	_, err := uc.GetUser(context.Background(), "did:nobody")

	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}
