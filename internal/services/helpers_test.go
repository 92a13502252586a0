package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/repositories"
	"ltctrack/internal/testutil"
)

// plainHasher keeps tests fast; bcrypt is covered in pkg/utils.
type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "h:" + secret, nil }

func (plainHasher) Verify(secret, digest string) bool { return digest == "h:"+secret }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	db         *gorm.DB
	users      repositories.UserRepository
	sessRepo   repositories.SessionRepository
	accounts   repositories.AccountRepository
	dailyStats repositories.DailyStatRepository
	guard      OwnershipGuard
	log        *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	accounts := repositories.NewAccountRepository(db)
	dailyStats := repositories.NewDailyStatRepository(db)
	return &testEnv{
		db:         db,
		users:      repositories.NewUserRepository(db),
		sessRepo:   repositories.NewSessionRepository(db),
		accounts:   accounts,
		dailyStats: dailyStats,
		guard:      NewOwnershipGuard(accounts, dailyStats),
		log:        zap.NewNop(),
	}
}

func (e *testEnv) user(t *testing.T, email string, role db_models.Role) *Identity {
	t.Helper()
	u := &db_models.User{Email: email, PasswordHash: "h:secret1", Name: strings.Split(email, "@")[0], Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return identityFromUser(u)
}

func (e *testEnv) account(t *testing.T, owner *Identity, name, address string) *db_models.Account {
	t.Helper()
	a := &db_models.Account{UserID: owner.ID, Name: name, LtcAddress: address}
	require.NoError(t, e.accounts.Create(context.Background(), a))
	return a
}

func ptr[T any](v T) *T { return &v }
