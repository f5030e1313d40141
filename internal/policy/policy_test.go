package policy

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/onboarding-backend/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(nil, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	return e
}

var (
	owner    = Actor{ID: 1, Role: models.RoleUser}
	stranger = Actor{ID: 2, Role: models.RoleUser}
	admin    = Actor{ID: 99, Role: models.RoleAdmin}
)

func TestAdminIsPermittedEverything(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	locked := Resource{ID: 5, OwnerID: owner.ID, Locked: true}

	for _, a := range []Action{ActionRead, ActionUpdate, ActionDelete, ActionChangeStatus,
		ActionLock, ActionUnlock, ActionListAll, ActionReadAudit} {
		d := e.Decide(context.Background(), admin, a, locked)
		assert.True(t, d.Allowed, "admin should be allowed %s", a)
		assert.Equal(t, ReasonAllowed, d.Reason)
	}
}

func TestOwnerRules(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	ctx := context.Background()
	unlocked := Resource{ID: 5, OwnerID: owner.ID}
	locked := Resource{ID: 5, OwnerID: owner.ID, Locked: true}

	t.Run("creates own record", func(t *testing.T) {
		assert.True(t, e.Decide(ctx, owner, ActionCreate, Resource{OwnerID: owner.ID}).Allowed)
	})

	t.Run("reads own record even when locked", func(t *testing.T) {
		assert.True(t, e.Decide(ctx, owner, ActionRead, unlocked).Allowed)
		assert.True(t, e.Decide(ctx, owner, ActionRead, locked).Allowed)
	})

	t.Run("edits and deletes while unlocked", func(t *testing.T) {
		assert.True(t, e.Decide(ctx, owner, ActionUpdate, unlocked).Allowed)
		assert.True(t, e.Decide(ctx, owner, ActionDelete, unlocked).Allowed)
	})

	t.Run("locked edits are denied as locked", func(t *testing.T) {
		for _, a := range []Action{ActionUpdate, ActionDelete} {
			d := e.Decide(ctx, owner, a, locked)
			assert.False(t, d.Allowed)
			assert.Equal(t, ReasonLocked, d.Reason)
		}
	})
}

func TestStrangerIsDeniedAsNotOwner(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	res := Resource{ID: 5, OwnerID: owner.ID, Locked: true}

	for _, a := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		d := e.Decide(context.Background(), stranger, a, res)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonNotOwner, d.Reason, "action %s", a)
	}
}

func TestUserNeverGetsAdminOnlyActions(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	own := Resource{ID: 5, OwnerID: owner.ID}

	for _, a := range []Action{ActionChangeStatus, ActionLock, ActionUnlock, ActionListAll, ActionReadAudit} {
		d := e.Decide(context.Background(), owner, a, own)
		assert.False(t, d.Allowed, "user must not %s", a)
		assert.Equal(t, ReasonRole, d.Reason)
		assert.True(t, AdminOnly(a))
	}
}

func TestCanAccess(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	r := models.Requirement{ID: 7, UserID: owner.ID, IsLocked: true}

	assert.True(t, e.CanAccess(context.Background(), owner, r, ActionRead))
	assert.False(t, e.CanAccess(context.Background(), owner, r, ActionUpdate))
	assert.True(t, e.CanAccess(context.Background(), admin, r, ActionUpdate))
}

func TestInvalidPolicyIsRejected(t *testing.T) {
	t.Parallel()
	_, err := New([]byte(`permit(principal, action, resource) when { context.foo == };`), nil)
	require.Error(t, err)
}

func TestDecisionIsLogged(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(nil, slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	require.NoError(t, err)

	e.Decide(context.Background(), stranger, ActionRead, Resource{ID: 3, OwnerID: owner.ID})

	out := buf.String()
	assert.Contains(t, out, `"msg":"authorization decision"`)
	assert.Contains(t, out, `"reason":"not_owner"`)
	assert.Contains(t, out, `"requirement_id":3`)
}
