package agent

import (
	"context"
	"crypto/ecdsa"
	"errors"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	"synx.backend/internal/domain/repositories"
	"synx.backend/pkg/crypto"
)

var generateWalletKey = ethcrypto.GenerateKey

// Wallet is a restored signing wallet bound to one user
type Wallet struct {
	UserID    string
	Address   string
	NetworkID string
	Key       *ecdsa.PrivateKey
}

// WalletProvisioner creates a wallet on a user's first chat and restores the
// same wallet on every later one. Seed material is sealed before it touches
// the database.
type WalletProvisioner struct {
	users     repositories.UserRepository
	sealer    *crypto.Sealer
	networkID string
}

// NewWalletProvisioner creates a new wallet provisioner
func NewWalletProvisioner(users repositories.UserRepository, sealer *crypto.Sealer, networkID string) *WalletProvisioner {
	return &WalletProvisioner{
		users:     users,
		sealer:    sealer,
		networkID: networkID,
	}
}

// WalletFor returns the user's wallet, provisioning one if none exists yet.
// A lost provisioning race surfaces ErrWalletExists rather than overwriting
// or silently retrying; the next sequential call restores the winner's
// material.
func (p *WalletProvisioner) WalletFor(ctx context.Context, userID string) (*Wallet, error) {
	material, err := p.users.GetWalletMaterial(ctx, userID)
	if err == nil {
		return p.restore(userID, material)
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	// No material yet. Make sure the user exists before minting a key for it.
	if _, err := p.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return p.provision(ctx, userID)
}

func (p *WalletProvisioner) provision(ctx context.Context, userID string) (*Wallet, error) {
	key, err := generateWalletKey()
	if err != nil {
		return nil, err
	}

	sealed, err := p.sealer.Seal(ethcrypto.FromECDSA(key))
	if err != nil {
		return nil, err
	}

	address := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()
	material := &entities.WalletMaterial{
		WalletID:  address,
		Seed:      sealed,
		NetworkID: p.networkID,
	}

	err = p.users.SetWalletMaterial(ctx, userID, material)
	if errors.Is(err, domainerrors.ErrAlreadyExists) {
		// Lost the race: another request provisioned first. Never overwrite
		// the winner's material with the key minted here.
		return nil, domainerrors.ErrWalletExists
	}
	if err != nil {
		return nil, err
	}

	return &Wallet{
		UserID:    userID,
		Address:   address,
		NetworkID: p.networkID,
		Key:       key,
	}, nil
}

func (p *WalletProvisioner) restore(userID string, material *entities.WalletMaterial) (*Wallet, error) {
	seed, err := p.sealer.Open(material.Seed)
	if err != nil {
		return nil, err
	}

	key, err := ethcrypto.ToECDSA(seed)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		UserID:    userID,
		Address:   material.WalletID,
		NetworkID: material.NetworkID,
		Key:       key,
	}, nil
}
