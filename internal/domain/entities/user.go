package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User represents a user entity. The ID is the opaque identifier issued by
// the identity provider (a DID), not something this service generates.
type User struct {
	ID        string      `json:"id"`
	Email     null.String `json:"email,omitempty"`
	WalletID  null.String `json:"walletId,omitempty"`
	NetworkID null.String `json:"networkId,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// HasWallet reports whether wallet material has been provisioned for the user.
func (u *User) HasWallet() bool {
	return u.WalletID.Valid && u.WalletID.String != ""
}

// CreateUserInput represents input for the identity upsert endpoint
type CreateUserInput struct {
	DID   string `json:"did" binding:"required"`
	Email string `json:"email"`
}

// WalletMaterial is the persisted secret state needed to restore a user's
// on-chain wallet across sessions. Seed is stored encrypted at rest.
type WalletMaterial struct {
	WalletID  string
	Seed      string
	NetworkID string
}
