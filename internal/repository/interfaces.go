package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/onboarding-backend/internal/models"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Users,Requirements,AuditLogs

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflict")
)

type Users interface {
	Create(ctx context.Context, email, passwordHash, fullName string, role models.Role) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// Requirements reads join the owner so UserEmail/UserFullName are populated.
type Requirements interface {
	Create(ctx context.Context, r models.Requirement) (models.Requirement, error)
	GetByID(ctx context.Context, id int64) (models.Requirement, error)
	// GetOwned returns ErrNotFound unless the record exists and belongs to ownerID.
	GetOwned(ctx context.Context, id, ownerID int64) (models.Requirement, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Requirement, error)
	ListAll(ctx context.Context) ([]models.Requirement, error)
	// Update persists every mutable column of r. UserID and CreatedAt are never written.
	Update(ctx context.Context, r models.Requirement) (models.Requirement, error)
	Delete(ctx context.Context, id int64) error
}

type AuditLogs interface {
	Append(ctx context.Context, e models.AuditLogEntry) (models.AuditLogEntry, error)
	// ListByRequirement returns entries newest first, joined with the actor when it still exists.
	ListByRequirement(ctx context.Context, requirementID int64) ([]models.AuditLogView, error)
}
