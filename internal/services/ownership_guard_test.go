package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ltctrack/internal/models/db_models"
	"ltctrack/pkg/utils"
)

func TestGuard_Allowed(t *testing.T) {
	g := NewOwnershipGuard(nil, nil)
	owner := uuid.New()

	user := &Identity{ID: owner, Role: db_models.RoleUser}
	stranger := &Identity{ID: uuid.New(), Role: db_models.RoleUser}
	admin := &Identity{ID: uuid.New(), Role: db_models.RoleAdmin}

	cases := []struct {
		name     string
		identity *Identity
		mode     AccessMode
		want     bool
	}{
		{"owner read", user, AccessRead, true},
		{"owner write", user, AccessWrite, true},
		{"stranger read", stranger, AccessRead, false},
		{"stranger write", stranger, AccessWrite, false},
		{"admin read", admin, AccessRead, true},
		{"admin write", admin, AccessWrite, false},
		{"anonymous", nil, AccessRead, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, g.Allowed(tc.identity, owner, tc.mode))
		})
	}
}

func TestGuard_ForeignAccountLooksMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	acc := env.account(t, alice, "main", "Laddr1")

	_, errForeign := env.guard.Account(ctx, bob, acc.ID, AccessRead)
	_, errMissing := env.guard.Account(ctx, bob, uuid.New(), AccessRead)

	assert.ErrorIs(t, errForeign, utils.ErrAccountNotFound)
	assert.ErrorIs(t, errMissing, utils.ErrAccountNotFound)
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	got, err := env.guard.Account(ctx, alice, acc.ID, AccessWrite)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = env.guard.Account(ctx, nil, acc.ID, AccessRead)
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestGuard_DailyStatResolvesThroughAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice@example.com", db_models.RoleUser)
	bob := env.user(t, "bob@example.com", db_models.RoleUser)
	admin := env.user(t, "root@example.com", db_models.RoleAdmin)
	acc := env.account(t, alice, "main", "Laddr1")

	stat := &db_models.DailyStat{AccountID: acc.ID, UserID: alice.ID, Date: utils.Today().Time()}
	require.NoError(t, env.dailyStats.Create(ctx, stat))

	_, _, err := env.guard.DailyStat(ctx, bob, stat.ID, AccessWrite)
	assert.ErrorIs(t, err, utils.ErrDailyStatNotFound)

	_, _, err = env.guard.DailyStat(ctx, bob, uuid.New(), AccessWrite)
	assert.ErrorIs(t, err, utils.ErrDailyStatNotFound)

	_, _, err = env.guard.DailyStat(ctx, admin, stat.ID, AccessWrite)
	assert.ErrorIs(t, err, utils.ErrDailyStatNotFound)

	got, owner, err := env.guard.DailyStat(ctx, admin, stat.ID, AccessRead)
	require.NoError(t, err)
	assert.Equal(t, stat.ID, got.ID)
	assert.Equal(t, acc.ID, owner.ID)
}
