package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/internal/repositories"
	"ltctrack/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, identity *Identity, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error)
	ListAccounts(ctx context.Context, identity *Identity) ([]response_models.AccountResponse, error)
	GetAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error)
	UpdateAccount(ctx context.Context, identity *Identity, accountID uuid.UUID, request request_models.UpdateAccountRequest) (*response_models.AccountResponse, error)
	DeleteAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) error
	VerifyAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error)
	UnverifyAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error)
	ListVerificationEvents(ctx context.Context, identity *Identity, accountID uuid.UUID) ([]response_models.VerificationEventResponse, error)
	GetTransactions(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AddressTransactionsResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	guard       OwnershipGuard
	chain       AddressLookup
	log         *zap.Logger
	now         func() time.Time
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	guard OwnershipGuard,
	chain AddressLookup,
	log *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		guard:       guard,
		chain:       chain,
		log:         log.Named("accounts"),
		now:         time.Now,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, identity *Identity, request request_models.CreateAccountRequest) (*response_models.AccountResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	name := strings.TrimSpace(request.Name)
	address := strings.TrimSpace(request.LtcAddress)
	if name == "" || address == "" {
		return nil, fmt.Errorf("%w: name and ltc_address are required", utils.ErrInvalidInput)
	}

	if err := a.checkUnique(ctx, identity.ID, name, address, nil); err != nil {
		return nil, err
	}

	account := &db_models.Account{
		UserID:     identity.ID,
		Name:       name,
		LtcAddress: address,
	}
	if err := a.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, a.conflictAfterRace(ctx, identity.ID, name, address, nil)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return a.toResponse(account, false), nil
}

func (a *AccountService) ListAccounts(ctx context.Context, identity *Identity) ([]response_models.AccountResponse, error) {
	if identity == nil {
		return nil, utils.ErrUnauthenticated
	}

	accounts, err := a.accountRepo.ListByUserId(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, *a.toResponse(&accounts[i], false))
	}
	return out, nil
}

func (a *AccountService) GetAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessRead)
	if err != nil {
		return nil, err
	}
	return a.toResponse(account, true), nil
}

func (a *AccountService) UpdateAccount(ctx context.Context, identity *Identity, accountID uuid.UUID, request request_models.UpdateAccountRequest) (*response_models.AccountResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessWrite)
	if err != nil {
		return nil, err
	}

	name, address := account.Name, account.LtcAddress
	if request.Name != nil {
		name = strings.TrimSpace(*request.Name)
	}
	if request.LtcAddress != nil {
		address = strings.TrimSpace(*request.LtcAddress)
	}
	if name == "" || address == "" {
		return nil, fmt.Errorf("%w: name and ltc_address must not be empty", utils.ErrInvalidInput)
	}

	if err := a.checkUnique(ctx, account.UserID, name, address, &account.ID); err != nil {
		return nil, err
	}

	if err := a.accountRepo.UpdateFields(ctx, account.ID, name, address); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, a.conflictAfterRace(ctx, account.UserID, name, address, &account.ID)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return a.reload(ctx, account.ID, false)
}

// DeleteAccount removes the account and every stat recorded for it.
func (a *AccountService) DeleteAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) error {
	account, err := a.guard.Account(ctx, identity, accountID, AccessWrite)
	if err != nil {
		return err
	}

	if err := a.accountRepo.DeleteWithStats(ctx, account.ID); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	a.log.Info("account deleted", zap.String("account_id", account.ID.String()), zap.String("user_id", identity.ID.String()))
	return nil
}

func (a *AccountService) VerifyAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessWrite)
	if err != nil {
		return nil, err
	}
	if account.IsVerified() {
		return nil, utils.ErrAccountVerified
	}

	flipped, err := a.accountRepo.MarkVerified(ctx, account.ID, identity.ID, a.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !flipped {
		return nil, utils.ErrAccountVerified
	}

	return a.reload(ctx, account.ID, true)
}

func (a *AccountService) UnverifyAccount(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessWrite)
	if err != nil {
		return nil, err
	}
	if !account.IsVerified() {
		return nil, utils.ErrAccountNotVerified
	}

	flipped, err := a.accountRepo.MarkUnverified(ctx, account.ID, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !flipped {
		return nil, utils.ErrAccountNotVerified
	}

	return a.reload(ctx, account.ID, true)
}

func (a *AccountService) ListVerificationEvents(ctx context.Context, identity *Identity, accountID uuid.UUID) ([]response_models.VerificationEventResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessRead)
	if err != nil {
		return nil, err
	}

	events, err := a.accountRepo.ListVerificationEvents(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.VerificationEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, response_models.VerificationEventResponse{
			ID:        e.ID,
			AccountID: e.AccountID,
			UserID:    e.UserID,
			Action:    string(e.Action),
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func (a *AccountService) GetTransactions(ctx context.Context, identity *Identity, accountID uuid.UUID) (*response_models.AddressTransactionsResponse, error) {
	account, err := a.guard.Account(ctx, identity, accountID, AccessRead)
	if err != nil {
		return nil, err
	}
	return a.chain.AddressTransactions(ctx, account.LtcAddress)
}

// checkUnique is the fast path; the unique indexes still decide under races.
func (a *AccountService) checkUnique(ctx context.Context, userID uuid.UUID, name, address string, excludeID *uuid.UUID) error {
	taken, err := a.accountRepo.NameTaken(ctx, userID, name, excludeID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if taken {
		return utils.ErrAccountNameExists
	}

	taken, err = a.accountRepo.AddressTaken(ctx, address, excludeID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if taken {
		return utils.ErrAccountAddressExists
	}
	return nil
}

// conflictAfterRace names the field that lost a concurrent write, falling
// back to the generic conflict when the winner is no longer visible.
func (a *AccountService) conflictAfterRace(ctx context.Context, userID uuid.UUID, name, address string, excludeID *uuid.UUID) error {
	if err := a.checkUnique(ctx, userID, name, address, excludeID); err != nil {
		return err
	}
	return utils.ErrAccountConflict
}

func (a *AccountService) reload(ctx context.Context, id uuid.UUID, withInfo bool) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return a.toResponse(account, withInfo), nil
}

func (a *AccountService) toResponse(account *db_models.Account, withInfo bool) *response_models.AccountResponse {
	resp := &response_models.AccountResponse{
		ID:         account.ID,
		Name:       account.Name,
		LtcAddress: account.LtcAddress,
		CreatedAt:  account.CreatedAt,
		VerifiedAt: account.VerifiedAt,
		IsVerified: account.IsVerified(),
	}
	if account.VerifiedAt != nil {
		days := utils.DaysSince(*account.VerifiedAt, a.now())
		resp.VerificationDays = &days
	}
	if withInfo {
		resp.VerificationInfo = verificationInfo(resp.VerificationDays)
	}
	return resp
}

func verificationInfo(days *int) string {
	switch {
	case days == nil:
		return "Not verified"
	case *days == 0:
		return "Verified today"
	case *days == 1:
		return "Verified 1 day ago"
	default:
		return fmt.Sprintf("Verified %d days ago", *days)
	}
}
