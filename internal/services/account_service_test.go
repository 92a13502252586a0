package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/models/request_models"
	"ltctrack/internal/models/response_models"
	"ltctrack/pkg/utils"
)

type fakeChain struct {
	address string
	err     error
}

func (f *fakeChain) AddressTransactions(_ context.Context, address string) (*response_models.AddressTransactionsResponse, error) {
	f.address = address
	if f.err != nil {
		return nil, f.err
	}
	return &response_models.AddressTransactionsResponse{Address: address}, nil
}

func newTestAccounts(env *testEnv, chain AddressLookup, now time.Time) *AccountService {
	svc := NewAccountService(env.accounts, env.guard, chain, env.log).(*AccountService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestAccountService_CreateConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAccounts(env, &fakeChain{}, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)

	created, err := svc.CreateAccount(ctx, alice, request_models.CreateAccountRequest{Name: " main ", LtcAddress: "Laddr1"})
	require.NoError(t, err)
	assert.Equal(t, "main", created.Name)
	assert.False(t, created.IsVerified)
	assert.Nil(t, created.VerificationDays)

	_, err = svc.CreateAccount(ctx, alice, request_models.CreateAccountRequest{Name: "main", LtcAddress: "Laddr2"})
	assert.ErrorIs(t, err, utils.ErrAccountNameExists)

	_, err = svc.CreateAccount(ctx, bob, request_models.CreateAccountRequest{Name: "bobs", LtcAddress: "Laddr1"})
	assert.ErrorIs(t, err, utils.ErrAccountAddressExists)

	_, err = svc.CreateAccount(ctx, bob, request_models.CreateAccountRequest{Name: "main", LtcAddress: "Laddr3"})
	assert.NoError(t, err)

	_, err = svc.CreateAccount(ctx, bob, request_models.CreateAccountRequest{Name: "  ", LtcAddress: "Laddr4"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestAccountService_UpdateRechecksExcludingSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAccounts(env, &fakeChain{}, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	a := env.account(t, alice, "one", "Laddr1")
	env.account(t, alice, "two", "Laddr2")

	// renaming to its own name is not a conflict
	updated, err := svc.UpdateAccount(ctx, alice, a.ID, request_models.UpdateAccountRequest{Name: ptr("one")})
	require.NoError(t, err)
	assert.Equal(t, "one", updated.Name)

	_, err = svc.UpdateAccount(ctx, alice, a.ID, request_models.UpdateAccountRequest{Name: ptr("two")})
	assert.ErrorIs(t, err, utils.ErrAccountNameExists)

	_, err = svc.UpdateAccount(ctx, alice, a.ID, request_models.UpdateAccountRequest{LtcAddress: ptr("Laddr2")})
	assert.ErrorIs(t, err, utils.ErrAccountAddressExists)

	updated, err = svc.UpdateAccount(ctx, alice, a.ID, request_models.UpdateAccountRequest{LtcAddress: ptr("Lnew")})
	require.NoError(t, err)
	assert.Equal(t, "Lnew", updated.LtcAddress)
	assert.Equal(t, "one", updated.Name)

	_, err = svc.UpdateAccount(ctx, bob, a.ID, request_models.UpdateAccountRequest{Name: ptr("hijack")})
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestAccountService_VerifyTwiceConflictsAndKeepsTimestamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	a := env.account(t, alice, "main", "Laddr1")

	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestAccounts(env, &fakeChain{}, t0)

	verified, err := svc.VerifyAccount(ctx, alice, a.ID)
	require.NoError(t, err)
	require.NotNil(t, verified.VerifiedAt)
	assert.True(t, verified.VerifiedAt.Equal(t0))
	assert.True(t, verified.IsVerified)
	assert.Equal(t, "Verified today", verified.VerificationInfo)

	svc.now = func() time.Time { return t0.Add(72 * time.Hour) }
	_, err = svc.VerifyAccount(ctx, alice, a.ID)
	assert.ErrorIs(t, err, utils.ErrAccountVerified)

	detail, err := svc.GetAccount(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.True(t, detail.VerifiedAt.Equal(t0))
	require.NotNil(t, detail.VerificationDays)
	assert.Equal(t, 3, *detail.VerificationDays)
	assert.Equal(t, "Verified 3 days ago", detail.VerificationInfo)

	unverified, err := svc.UnverifyAccount(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Nil(t, unverified.VerifiedAt)

	_, err = svc.UnverifyAccount(ctx, alice, a.ID)
	assert.ErrorIs(t, err, utils.ErrAccountNotVerified)

	events, err := svc.ListVerificationEvents(ctx, alice, a.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "verify", events[0].Action)
	assert.Equal(t, "unverify", events[1].Action)
}

func TestAccountService_AdminReadsButCannotWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAccounts(env, &fakeChain{}, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	admin := env.user(t, "root@example.com", db_models.RoleAdmin)
	a := env.account(t, alice, "main", "Laddr1")

	_, err := svc.GetAccount(ctx, admin, a.ID)
	assert.NoError(t, err)

	_, err = svc.VerifyAccount(ctx, admin, a.ID)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
	assert.ErrorIs(t, svc.DeleteAccount(ctx, admin, a.ID), utils.ErrAccountNotFound)
}

func TestAccountService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAccounts(env, &fakeChain{}, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	a := env.account(t, alice, "main", "Laddr1")
	require.NoError(t, env.dailyStats.Create(ctx, &db_models.DailyStat{AccountID: a.ID, UserID: alice.ID, Date: utils.Today().Time()}))

	assert.ErrorIs(t, svc.DeleteAccount(ctx, bob, a.ID), utils.ErrAccountNotFound)

	require.NoError(t, svc.DeleteAccount(ctx, alice, a.ID))
	assert.ErrorIs(t, svc.DeleteAccount(ctx, alice, a.ID), utils.ErrAccountNotFound)

	var n int64
	require.NoError(t, env.db.Model(&db_models.DailyStat{}).Count(&n).Error)
	assert.Zero(t, n)

	list, err := svc.ListAccounts(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccountService_ListOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newTestAccounts(env, &fakeChain{}, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	env.account(t, alice, "a1", "Laddr1")
	env.account(t, bob, "b1", "Laddr2")

	list, err := svc.ListAccounts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a1", list[0].Name)
}

func TestAccountService_Transactions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	chain := &fakeChain{}
	svc := newTestAccounts(env, chain, time.Now())
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	a := env.account(t, alice, "main", "Laddr1")

	resp, err := svc.GetTransactions(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laddr1", resp.Address)
	assert.Equal(t, "Laddr1", chain.address)

	_, err = svc.GetTransactions(ctx, bob, a.ID)
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	chain.err = errors.Join(utils.ErrUpstreamError, errors.New("boom"))
	_, err = svc.GetTransactions(ctx, alice, a.ID)
	assert.ErrorIs(t, err, utils.ErrUpstreamError)

	_, err = svc.GetTransactions(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}
