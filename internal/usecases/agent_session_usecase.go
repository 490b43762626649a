package usecases

import (
	"context"
	"errors"
	"sync"

	"synx.backend/internal/domain/entities"
	domainerrors "synx.backend/internal/domain/errors"
	agentinfra "synx.backend/internal/infrastructure/agent"
)

// AgentBuilder constructs an agent session around a restored wallet
type AgentBuilder func(wallet *agentinfra.Wallet) (entities.Agent, error)

// AgentSessionUsecase hands out per-user agent sessions. A session binds the
// user's wallet to a model chat loop; sessions are cached per user so repeat
// requests reuse the restored key instead of unsealing on every message.
type AgentSessionUsecase struct {
	provisioner *agentinfra.WalletProvisioner
	build       AgentBuilder
	sessions    map[string]entities.Agent
	mu          sync.RWMutex
}

// NewAgentSessionUsecase creates a new agent session usecase
func NewAgentSessionUsecase(provisioner *agentinfra.WalletProvisioner, build AgentBuilder) *AgentSessionUsecase {
	return &AgentSessionUsecase{
		provisioner: provisioner,
		build:       build,
		sessions:    make(map[string]entities.Agent),
	}
}

// SessionFor returns a ready agent for the user, provisioning the wallet on
// first use. Unknown user surfaces NotFound; a lost wallet-provisioning race
// surfaces Conflict and the next call picks up the persisted material.
func (u *AgentSessionUsecase) SessionFor(ctx context.Context, userID string) (entities.Agent, error) {
	u.mu.RLock()
	session, ok := u.sessions[userID]
	u.mu.RUnlock()
	if ok {
		return session, nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Double check
	if session, ok := u.sessions[userID]; ok {
		return session, nil
	}

	wallet, err := u.provisioner.WalletFor(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			return nil, domainerrors.NotFound("user not found")
		case errors.Is(err, domainerrors.ErrWalletExists):
			return nil, domainerrors.Conflict("wallet already exists")
		default:
			return nil, err
		}
	}

	session, err = u.build(wallet)
	if err != nil {
		return nil, domainerrors.Upstream("failed to start agent session", err)
	}

	u.sessions[userID] = session
	return session, nil
}
