package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ltctrack/internal/models/db_models"
	"ltctrack/internal/testutil"
)

func TestSessionRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)
	user := seedUser(t, db, "a@example.com")
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	live := &db_models.Session{TokenHash: "live", UserID: user.ID, Fingerprint: "fp", ExpiresAt: now.Add(time.Hour)}
	dead := &db_models.Session{TokenHash: "dead", UserID: user.ID, Fingerprint: "fp", ExpiresAt: now}
	other := &db_models.Session{TokenHash: "other", UserID: user.ID, Fingerprint: "fp", ExpiresAt: now.Add(time.Hour)}
	for _, s := range []*db_models.Session{live, dead, other} {
		require.NoError(t, repo.Create(ctx, s))
	}

	err := repo.Create(ctx, &db_models.Session{TokenHash: "live", UserID: user.ID, Fingerprint: "fp", ExpiresAt: now})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByUserExcept(ctx, user.ID, "live")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	found, err := repo.FindByTokenHash(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, found)

	require.NoError(t, repo.DeleteByTokenHash(ctx, "live"))
	require.NoError(t, repo.DeleteByTokenHash(ctx, "live"))
	found, err = repo.FindByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(ctx, &db_models.User{Email: "  Alice@Example.COM ", PasswordHash: "x"}))

	u, err := repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice@example.com", u.Email)

	err = repo.Create(ctx, &db_models.User{Email: "alice@EXAMPLE.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}
