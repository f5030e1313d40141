package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/onboarding-backend/internal/api/validate"
	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	repo "github.com/baharkarakas/onboarding-backend/internal/repository"
)

type UserService struct {
	r   repo.Users
	tm  *auth.TokenManager
	rev auth.Revocations
	lg  *slog.Logger
}

func NewUserService(r repo.Users, tm *auth.TokenManager, rev auth.Revocations, lg *slog.Logger) *UserService {
	if lg == nil {
		lg = slog.Default()
	}
	return &UserService{r: r, tm: tm, rev: rev, lg: lg}
}

type Session struct {
	User   models.User
	Tokens auth.Pair
}

// Register creates a User-role account and signs it in.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)
	if err := validate.Collect(
		validate.Email("email", email),
		validate.MaxLen("email", email, 255),
		validate.MinLen("password", password, 6),
		validate.Required("fullName", fullName),
		validate.MaxLen("fullName", fullName, 255),
	); err != nil {
		return Session{}, err
	}

	if _, err := s.r.GetByEmail(ctx, email); err == nil {
		return Session{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return Session{}, s.internal(ctx, "lookup user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return Session{}, s.internal(ctx, "hash password", err)
	}
	u, err := s.r.Create(ctx, email, hash, fullName, models.RoleUser)
	if errors.Is(err, repo.ErrConflict) {
		return Session{}, ErrEmailTaken
	}
	if err != nil {
		return Session{}, s.internal(ctx, "create user", err)
	}
	return s.session(ctx, u)
}

func (s *UserService) Login(ctx context.Context, email, password string) (Session, error) {
	u, err := s.r.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, s.internal(ctx, "lookup user", err)
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(ctx, u)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if revoked, err := s.rev.IsRevoked(ctx, claims.ID); err != nil {
		return Session{}, s.internal(ctx, "check revocation", err)
	} else if revoked {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.r.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, s.internal(ctx, "lookup user", err)
	}
	if err := s.rev.Revoke(ctx, claims.ID, time.Until(claims.Expiry())); err != nil {
		s.lg.WarnContext(ctx, "refresh token rotation not recorded", "err", err, "user_id", u.ID)
	}
	return s.session(ctx, u)
}

// Logout revokes the presented access token until it expires.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.rev.Revoke(ctx, claims.ID, time.Until(claims.Expiry())); err != nil {
		return s.internal(ctx, "revoke token", err)
	}
	return nil
}

func (s *UserService) Me(ctx context.Context, id int64) (models.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, s.internal(ctx, "lookup user", err)
	}
	return u, nil
}

// EnsureUser creates the account when the email is unused; seeding uses it.
func (s *UserService) EnsureUser(ctx context.Context, email, password, fullName string, role models.Role) (models.User, bool, error) {
	u, err := s.r.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, false, err
	}
	nu := models.User{Email: email, FullName: fullName, Role: role}
	if err := nu.Validate(); err != nil {
		return models.User{}, false, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, false, err
	}
	u, err = s.r.Create(ctx, email, hash, fullName, role)
	return u, err == nil, err
}

func (s *UserService) session(ctx context.Context, u models.User) (Session, error) {
	pair, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return Session{}, s.internal(ctx, "generate token", err)
	}
	return Session{User: u, Tokens: pair}, nil
}

func (s *UserService) internal(ctx context.Context, what string, err error) error {
	s.lg.ErrorContext(ctx, what+" failed", "err", err)
	return fmt.Errorf("%s: %w", what, err)
}
