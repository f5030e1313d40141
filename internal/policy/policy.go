// Package policy decides whether an actor may perform an operation on a requirement.
//
// Decisions are evaluated by the embedded Cedar policy set. The package then
// classifies a denial so callers can tell "not yours" (reported as not-found
// to avoid leaking existence) from "locked" (reported as forbidden).
package policy

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/cedar-policy/cedar-go"

	"github.com/baharkarakas/onboarding-backend/internal/models"
)

//go:embed policies.cedar
var policiesContent []byte

type Action string

const (
	ActionCreate       Action = "create"
	ActionRead         Action = "read"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionChangeStatus Action = "status_change"
	ActionLock         Action = "lock"
	ActionUnlock       Action = "unlock"
	ActionListAll      Action = "list_all"
	ActionReadAudit    Action = "read_audit"
)

// adminOnly actions carry no ownership rule: a User is refused before any lookup.
var adminOnly = map[Action]bool{
	ActionChangeStatus: true,
	ActionLock:         true,
	ActionUnlock:       true,
	ActionListAll:      true,
	ActionReadAudit:    true,
}

func AdminOnly(a Action) bool { return adminOnly[a] }

type Actor struct {
	ID   int64
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Resource is the slice of a Requirement the policy looks at.
type Resource struct {
	ID      int64
	OwnerID int64
	Locked  bool
}

func ResourceOf(r models.Requirement) Resource {
	return Resource{ID: r.ID, OwnerID: r.UserID, Locked: r.IsLocked}
}

type Reason string

const (
	ReasonAllowed  Reason = "allowed"
	ReasonRole     Reason = "role"      // operation needs Admin
	ReasonNotOwner Reason = "not_owner" // record belongs to someone else
	ReasonLocked   Reason = "locked"    // owner, but record is locked
	ReasonDenied   Reason = "denied"
)

type Decision struct {
	Allowed  bool
	Reason   Reason
	PolicyID string
}

type Engine struct {
	policies *cedar.PolicySet
	logger   *slog.Logger
}

// New parses policyBytes, or the embedded policy set when nil.
func New(policyBytes []byte, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if policyBytes == nil {
		policyBytes = policiesContent
	}
	ps, err := cedar.NewPolicySetFromBytes("policies.cedar", policyBytes)
	if err != nil {
		return nil, fmt.Errorf("parse policies: %w", err)
	}
	return &Engine{policies: ps, logger: logger}, nil
}

// MustDefault returns the engine over the embedded policies. It panics only if
// the embedded file does not parse, which the package tests rule out.
func MustDefault(logger *slog.Logger) *Engine {
	e, err := New(nil, logger)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) Decide(ctx context.Context, actor Actor, action Action, res Resource) Decision {
	decision, diag := cedar.Authorize(e.policies, entities(actor, res), request(actor, action, res))

	d := Decision{Allowed: decision == cedar.Allow}
	if len(diag.Reasons) > 0 {
		d.PolicyID = string(diag.Reasons[0].PolicyID)
	}
	if d.Allowed {
		d.Reason = ReasonAllowed
	} else {
		d.Reason = classify(actor, action, res)
	}
	for _, perr := range diag.Errors {
		e.logger.ErrorContext(ctx, "policy evaluation error", "policy", perr.PolicyID, "err", perr.Message)
	}

	e.logger.DebugContext(ctx, "authorization decision",
		"user_id", actor.ID,
		"role", actor.Role,
		"action", action,
		"requirement_id", res.ID,
		"allowed", d.Allowed,
		"reason", d.Reason,
		"policy_id", d.PolicyID,
	)
	return d
}

// CanAccess is the boolean form of Decide.
func (e *Engine) CanAccess(ctx context.Context, actor Actor, r models.Requirement, action Action) bool {
	return e.Decide(ctx, actor, action, ResourceOf(r)).Allowed
}

func classify(actor Actor, action Action, res Resource) Reason {
	switch {
	case !actor.IsAdmin() && adminOnly[action]:
		return ReasonRole
	case res.OwnerID != actor.ID:
		return ReasonNotOwner
	case res.Locked && (action == ActionUpdate || action == ActionDelete):
		return ReasonLocked
	default:
		return ReasonDenied
	}
}

func entities(actor Actor, res Resource) cedar.EntityMap {
	principal := principalUID(actor)
	resource := resourceUID(res)
	return cedar.EntityMap{
		principal: cedar.Entity{
			UID:     principal,
			Parents: cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"uid":  cedar.Long(actor.ID),
				"role": cedar.String(string(actor.Role)),
			}),
		},
		resource: cedar.Entity{
			UID:     resource,
			Parents: cedar.NewEntityUIDSet(),
			Attributes: cedar.NewRecord(cedar.RecordMap{
				"owner":  cedar.Long(res.OwnerID),
				"locked": cedar.Boolean(res.Locked),
			}),
		},
	}
}

func request(actor Actor, action Action, res Resource) cedar.Request {
	return cedar.Request{
		Principal: principalUID(actor),
		Action:    cedar.NewEntityUID("Action", cedar.String(string(action))),
		Resource:  resourceUID(res),
		Context:   cedar.NewRecord(cedar.RecordMap{}),
	}
}

func principalUID(a Actor) cedar.EntityUID {
	return cedar.NewEntityUID("User", cedar.String(fmt.Sprint(a.ID)))
}

func resourceUID(r Resource) cedar.EntityUID {
	return cedar.NewEntityUID("Requirement", cedar.String(fmt.Sprint(r.ID)))
}
