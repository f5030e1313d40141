package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/config"
	"github.com/baharkarakas/onboarding-backend/internal/models"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		tokenRole = string(models.RoleUser)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "cli-test")

	out, err := runCmd(t, "token", "7", "--role", "Admin")
	require.NoError(t, err)

	c := config.Load()
	tm := auth.NewTokenManager(c.JWTAccessSecret, c.JWTRefreshSecret, c.JWTIssuer, c.AccessTTL, c.RefreshTTL)
	claims, err := tm.ParseAccess(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenCommandRejectsBadInput(t *testing.T) {
	_, err := runCmd(t, "token", "abc")
	assert.ErrorContains(t, err, "invalid user id")

	_, err = runCmd(t, "token", "3", "--role", "Root")
	assert.ErrorContains(t, err, "invalid role")
}
