package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/onboarding-backend/internal/api/validate"
	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository/memory"
)

type userFixture struct {
	svc   *UserService
	tm    *auth.TokenManager
	rev   *auth.MemoryRevocations
	store *memory.Store
}

func newUserFixture() userFixture {
	store := memory.New()
	tm := auth.NewTokenManager("a-secret", "r-secret", "test", time.Hour, 24*time.Hour)
	rev := auth.NewMemoryRevocations()
	return userFixture{svc: NewUserService(store.Users(), tm, rev, nil), tm: tm, rev: rev, store: store}
}

func TestRegisterIssuesUserTokens(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	s, err := f.svc.Register(ctx, "  New@Example.com ", "secret1", "New Person")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", s.User.Email)
	assert.Equal(t, models.RoleUser, s.User.Role)
	assert.NotEqual(t, "secret1", s.User.PasswordHash)

	claims, err := f.tm.ParseAccess(s.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "dup@example.com", "secret1", "Dup")
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, "DUP@example.com", "secret2", "Dup Again")
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.Register(ctx, "no-at-sign", "123", "")
	var verrs validate.Errs
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)

	_, err = f.svc.Register(ctx, "long@example.com", "secret1", strings.Repeat("n", 256))
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "fullName", verrs[0].Field)
}

func TestLogin(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, "lee@example.com", "secret1", "Lee")
	require.NoError(t, err)

	s, err := f.svc.Login(ctx, "LEE@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Tokens.Refresh)

	_, err = f.svc.Login(ctx, "lee@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	s, err := f.svc.Register(ctx, "rot@example.com", "secret1", "Rot")
	require.NoError(t, err)

	next, err := f.svc.Refresh(ctx, s.Tokens.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, s.Tokens.Refresh, next.Tokens.Refresh)

	_, err = f.svc.Refresh(ctx, s.Tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Refresh(ctx, s.Tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	s, err := f.svc.Register(ctx, "out@example.com", "secret1", "Out")
	require.NoError(t, err)

	claims, err := f.tm.ParseAccess(s.Tokens.Access)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.rev.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMe(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()
	s, err := f.svc.Register(ctx, "me@example.com", "secret1", "Me")
	require.NoError(t, err)

	u, err := f.svc.Me(ctx, s.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Me", u.FullName)

	f.store.DeleteUser(s.User.ID)
	_, err = f.svc.Me(ctx, s.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	f := newUserFixture()
	ctx := context.Background()

	u, created, err := f.svc.EnsureUser(ctx, "admin@clirec.com", "admin123", "Admin User", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdmin, u.Role)

	again, created, err := f.svc.EnsureUser(ctx, "admin@clirec.com", "other", "Someone", models.RoleUser)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, models.RoleAdmin, again.Role)

	s, err := f.svc.Login(ctx, "admin@clirec.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, s.User.Role)
}
