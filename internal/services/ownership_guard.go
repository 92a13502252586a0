package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

type AccessMode int

const (
	AccessRead AccessMode = iota
	AccessWrite
)

func (m AccessMode) String() string {
	if m == AccessWrite {
		return "write"
	}
	return "read"
}

// OwnershipGuard is the single place that decides whether an identity may
// touch a resource. A denied request is reported exactly like a missing
// resource so callers cannot probe for other users' ids.
type OwnershipGuard interface {
	Allowed(identity *Identity, ownerID uuid.UUID, mode AccessMode) bool
	Account(ctx context.Context, identity *Identity, accountID uuid.UUID, mode AccessMode) (*db_models.Account, error)
	DailyStat(ctx context.Context, identity *Identity, statID uuid.UUID, mode AccessMode) (*db_models.DailyStat, *db_models.Account, error)
}

type ownershipGuard struct {
	accountRepo   repositories.AccountRepository
	dailyStatRepo repositories.DailyStatRepository
}

func NewOwnershipGuard(accountRepo repositories.AccountRepository, dailyStatRepo repositories.DailyStatRepository) OwnershipGuard {
	return &ownershipGuard{
		accountRepo:   accountRepo,
		dailyStatRepo: dailyStatRepo,
	}
}

// Allowed: the owner may do anything; an admin may only read.
func (g *ownershipGuard) Allowed(identity *Identity, ownerID uuid.UUID, mode AccessMode) bool {
	if identity == nil {
		return false
	}
	if identity.ID == ownerID {
		return true
	}
	return identity.IsAdmin() && mode == AccessRead
}

func (g *ownershipGuard) Account(ctx context.Context, identity *Identity, accountID uuid.UUID, mode AccessMode) (*db_models.Account, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	account, err := g.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil || !g.Allowed(identity, account.UserID, mode) {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

// DailyStat resolves stat -> account -> owner. The stat's own user_id copy is
// not trusted for the decision.
func (g *ownershipGuard) DailyStat(ctx context.Context, identity *Identity, statID uuid.UUID, mode AccessMode) (*db_models.DailyStat, *db_models.Account, error) {
	if identity == nil {
		return nil, nil, utils.ErrUnauthenticated
	}

	stat, err := g.dailyStatRepo.FindById(ctx, statID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if stat == nil {
		return nil, nil, utils.ErrDailyStatNotFound
	}

	account, err := g.accountRepo.FindById(ctx, stat.AccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil || !g.Allowed(identity, account.UserID, mode) {
		return nil, nil, utils.ErrDailyStatNotFound
	}
	return stat, account, nil
}
