package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authHelper "axflo_backend/internals/features/users/auth/helper"
	"axflo_backend/internals/features/users/user/model"
	users "axflo_backend/internals/seeds/users/auth"
	"axflo_backend/internals/testutil"
)

func TestSeedSuperuser(t *testing.T) {
	db := testutil.NewDB(t)
	seed := users.SuperuserSeed{Username: "admin", Email: "admin@x.com", Password: "s3cret-pass"}

	created, err := users.SeedSuperuser(db, seed)
	require.NoError(t, err)
	assert.True(t, created)

	var u model.UserModel
	require.NoError(t, db.Where("username = ?", "admin").First(&u).Error)
	assert.True(t, u.IsSuperuser)
	assert.True(t, u.IsStaff)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "s3cret-pass"))

	seed.Password = "another"
	created, err = users.SeedSuperuser(db, seed)
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, db.First(&u, "id = ?", u.ID).Error)
	assert.NoError(t, authHelper.CheckPasswordHash(u.Password, "s3cret-pass"))
}

func TestSuperuserFromEnv(t *testing.T) {
	t.Setenv("SEED_ADMIN_USERNAME", " admin ")
	t.Setenv("SEED_ADMIN_PASSWORD", "")
	_, ok := users.SuperuserFromEnv()
	assert.False(t, ok)

	t.Setenv("SEED_ADMIN_PASSWORD", "pw")
	s, ok := users.SuperuserFromEnv()
	assert.True(t, ok)
	assert.Equal(t, "admin", s.Username)

	db := testutil.NewDB(t)
	require.NoError(t, users.SeedSuperuserFromEnv(db))
	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
