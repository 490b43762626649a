package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates or refreshes a user keyed by the identity-provider id.
// Repeated calls with the same id are idempotent; the latest email wins.
func (r *UserRepository) Upsert(ctx context.Context, user *entities.User) (*entities.User, error) {
	now := time.Now()
	m := &models.User{
		ID:        user.ID,
		Email:     user.Email.Ptr(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"email": user.Email.Ptr(), "updated_at": now}),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, user.ID)
}

// GetByID gets a user by identity-provider id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// SetWalletMaterial binds wallet material to a user exactly once. The update
// is guarded on wallet_id IS NULL so a concurrent double-provision loses the
// race at the database rather than overwriting the winner's material.
func (r *UserRepository) SetWalletMaterial(ctx context.Context, userID string, material *entities.WalletMaterial) error {
	updates := map[string]interface{}{
		"wallet_id":   material.WalletID,
		"wallet_seed": material.Seed,
		"network_id":  material.NetworkID,
		"updated_at":  time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND wallet_id IS NULL", userID).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either the user does not exist or wallet fields are already set.
		var m models.User
		if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		return domainerrors.ErrAlreadyExists
	}
	return nil
}

// GetWalletMaterial loads persisted wallet material for a user. Returns
// ErrNotFound when the user is unknown or no wallet has been provisioned yet.
func (r *UserRepository) GetWalletMaterial(ctx context.Context, userID string) (*entities.WalletMaterial, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	if m.WalletID == nil || *m.WalletID == "" {
		return nil, domainerrors.ErrNotFound
	}

	material := &entities.WalletMaterial{WalletID: *m.WalletID}
	if m.WalletSeed != nil {
		material.Seed = *m.WalletSeed
	}
	if m.NetworkID != nil {
		material.NetworkID = *m.NetworkID
	}
	return material, nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:        m.ID,
		Email:     null.StringFromPtr(m.Email),
		WalletID:  null.StringFromPtr(m.WalletID),
		NetworkID: null.StringFromPtr(m.NetworkID),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
