package middleware

import (
	"context"

	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/policy"
)

type userKey struct{}

type UserCtx struct {
	UserID int64
	Role   models.Role
	Claims *auth.Claims
}

func (u UserCtx) Actor() policy.Actor { return policy.Actor{ID: u.UserID, Role: u.Role} }

func WithUser(ctx context.Context, u UserCtx) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

func FromCtx(ctx context.Context) (UserCtx, bool) {
	u, ok := ctx.Value(userKey{}).(UserCtx)
	return u, ok
}
