package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("requirement not found")
	ErrForbidden = errors.New("forbidden")
	// ErrLocked is a Forbidden error; errors.Is(ErrLocked, ErrForbidden) holds.
	ErrLocked = fmt.Errorf("%w: requirement is locked", ErrForbidden)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
)
