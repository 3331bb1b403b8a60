package auth

import (
	"context"
	"testing"
	"time"

	"Backend-GnaasCMS/src/config"
	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"
	"Backend-GnaasCMS/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.NewMemory()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	return NewService(st, cfg), st
}

func seedUser(t *testing.T, st *store.Store, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		FullName:     "Test Admin",
		Email:        email,
		Role:         models.RoleSecretary,
		PasswordHash: string(hash),
	}
	require.NoError(t, st.Users.Insert(context.Background(), u))
	return u
}

func TestLoginIssuesToken(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st, "sec@example.com", "hunter22")

	result, err := svc.Login(context.Background(), "sec@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "sec@example.com", result.User.Email)

	claims, err := utils.ParseToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleSecretary), claims.Role)
}

func TestLoginWrongCredentialsIndistinguishable(t *testing.T) {
	svc, st := newTestService(t)
	seedUser(t, st, "sec@example.com", "hunter22")
	ctx := context.Background()

	_, errPassword := svc.Login(ctx, "sec@example.com", "wrong")
	_, errEmail := svc.Login(ctx, "nobody@example.com", "hunter22")

	require.Error(t, errPassword)
	require.Error(t, errEmail)
	assert.Equal(t, errPassword.Error(), errEmail.Error())
}

func TestChangePassword(t *testing.T) {
	svc, st := newTestService(t)
	user := seedUser(t, st, "sec@example.com", "hunter22")
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID.Hex(), "hunter22", "short")
	assert.True(t, models.IsValidation(err))

	err = svc.ChangePassword(ctx, user.ID.Hex(), "wrong", "newpassword")
	assert.True(t, models.IsValidation(err))

	require.NoError(t, svc.ChangePassword(ctx, user.ID.Hex(), "hunter22", "newpassword"))
	_, err = svc.Login(ctx, "sec@example.com", "newpassword")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "sec@example.com", "hunter22")
	assert.Error(t, err)
}

func TestEnsureSuperAdminIdempotent(t *testing.T) {
	st := store.NewMemory()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		SuperAdminEmail:    "root@example.com",
		SuperAdminPassword: "rootpass",
		SuperAdminName:     "Root",
	}
	svc := NewService(st, cfg)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSuperAdmin(ctx))
	require.NoError(t, svc.EnsureSuperAdmin(ctx))

	users, err := st.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleSuperAdmin, users[0].Role)
}
