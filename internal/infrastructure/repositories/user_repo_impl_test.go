package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
)

func TestUserRepository_UpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, &entities.User{
		ID:    "did:privy:alice",
		Email: null.StringFrom("alice@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "did:privy:alice", first.ID)
	assert.Equal(t, "alice@example.com", first.Email.String)

	// Second upsert with a different email keeps one row, latest email wins.
	second, err := repo.Upsert(ctx, &entities.User{
		ID:    "did:privy:alice",
		Email: null.StringFrom("alice@new.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@new.example.com", second.Email.String)

	var count int64
	require.NoError(t, db.Table("users").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_UpsertWithoutEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	user, err := repo.Upsert(context.Background(), &entities.User{ID: "did:privy:bob"})
	require.NoError(t, err)
	assert.False(t, user.Email.Valid)
	assert.False(t, user.HasWallet())
}

func TestUserRepository_UpsertWithoutEmailClearsStoredEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entities.User{
		ID:    "did:privy:erin",
		Email: null.StringFrom("erin@example.com"),
	})
	require.NoError(t, err)

	// The latest call's email wins even when absent.
	user, err := repo.Upsert(ctx, &entities.User{ID: "did:privy:erin"})
	require.NoError(t, err)
	assert.False(t, user.Email.Valid)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), "did:privy:ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_SetWalletMaterial_Once(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entities.User{ID: "did:privy:carol"})
	require.NoError(t, err)

	material := &entities.WalletMaterial{
		WalletID:  "wallet-1",
		Seed:      "sealed-seed",
		NetworkID: "base-sepolia",
	}
	require.NoError(t, repo.SetWalletMaterial(ctx, "did:privy:carol", material))

	// Second bind attempt must be rejected, not silently overwrite.
	err = repo.SetWalletMaterial(ctx, "did:privy:carol", &entities.WalletMaterial{
		WalletID: "wallet-2",
		Seed:     "other-seed",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	got, err := repo.GetWalletMaterial(ctx, "did:privy:carol")
	require.NoError(t, err)
	assert.Equal(t, "wallet-1", got.WalletID)
	assert.Equal(t, "sealed-seed", got.Seed)
	assert.Equal(t, "base-sepolia", got.NetworkID)
}

func TestUserRepository_SetWalletMaterial_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	err := repo.SetWalletMaterial(context.Background(), "did:privy:ghost", &entities.WalletMaterial{
		WalletID: "wallet-1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_GetWalletMaterial_NoneProvisioned(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, &entities.User{ID: "did:privy:dave"})
	require.NoError(t, err)

	_, err = repo.GetWalletMaterial(ctx, "did:privy:dave")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
