package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	u, err := users.Create(ctx, "a@example.com", "h", "A", models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = users.Create(ctx, "A@EXAMPLE.com", "h", "A2", models.RoleUser)
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := users.GetByEmail(ctx, "a@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRequirementCreateKeepsSuppliedTimestamps(t *testing.T) {
	ctx := context.Background()
	reqs := New().WithClock(fixedClock()).Requirements()

	at := time.Date(2019, 3, 1, 12, 0, 0, 0, time.UTC)
	r, err := reqs.Create(ctx, models.Requirement{UserID: 1, ClientName: "one", CreatedAt: at, UpdatedAt: at})
	require.NoError(t, err)
	assert.Equal(t, at, r.CreatedAt)
	assert.Equal(t, at, r.UpdatedAt)

	r, err = reqs.Create(ctx, models.Requirement{UserID: 1, ClientName: "two"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC), r.CreatedAt)
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
}

func TestRequirementsOwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(fixedClock())
	owner, err := s.Users().Create(ctx, "o@example.com", "h", "Owner", models.RoleUser)
	require.NoError(t, err)

	reqs := s.Requirements()
	first, err := reqs.Create(ctx, models.Requirement{UserID: owner.ID, ClientName: "one"})
	require.NoError(t, err)
	second, err := reqs.Create(ctx, models.Requirement{UserID: owner.ID, ClientName: "two"})
	require.NoError(t, err)
	_, err = reqs.Create(ctx, models.Requirement{UserID: 42, ClientName: "other"})
	require.NoError(t, err)

	require.NotNil(t, first.UserFullName)
	assert.Equal(t, "Owner", *first.UserFullName)

	_, err = reqs.GetOwned(ctx, first.ID, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mine, err := reqs.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)

	all, err := reqs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Nil(t, all[0].UserEmail, "owner 42 does not exist")

	first.ClientName = "uno"
	first.UserID = 42
	updated, err := reqs.Update(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "uno", updated.ClientName)
	assert.Equal(t, owner.ID, updated.UserID, "owner is immutable")

	require.NoError(t, reqs.Delete(ctx, first.ID))
	assert.ErrorIs(t, reqs.Delete(ctx, first.ID), repository.ErrNotFound)
	_, err = reqs.Update(ctx, first)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuditLogs(t *testing.T) {
	ctx := context.Background()
	s := New().WithClock(fixedClock())
	actor, err := s.Users().Create(ctx, "a@example.com", "h", "Actor", models.RoleAdmin)
	require.NoError(t, err)

	logs := s.AuditLogs()
	changes := map[string]any{"status": "Draft"}
	_, err = logs.Append(ctx, models.AuditLogEntry{RequirementID: 1, UserID: actor.ID, Action: models.AuditCreate, Changes: changes})
	require.NoError(t, err)
	changes["status"] = "mutated"

	_, err = logs.Append(ctx, models.AuditLogEntry{RequirementID: 2, UserID: actor.ID, Action: models.AuditCreate})
	require.NoError(t, err)
	_, err = logs.Append(ctx, models.AuditLogEntry{RequirementID: 1, UserID: actor.ID, Action: models.AuditLock,
		Changes: map[string]any{"isLocked": true}, PreviousValues: map[string]any{"isLocked": false}})
	require.NoError(t, err)

	h, err := logs.ListByRequirement(ctx, 1)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, models.AuditLock, h[0].Action)
	assert.Equal(t, "Draft", h[1].Changes["status"])
	require.NotNil(t, h[0].ActorFullName)
	assert.Equal(t, "Actor", *h[0].ActorFullName)

	s.DeleteUser(actor.ID)
	h, err = logs.ListByRequirement(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, h[0].ActorFullName)
	assert.Equal(t, actor.ID, h[0].UserID)

	empty, err := logs.ListByRequirement(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
