package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/baharkarakas/onboarding-backend/internal/api/validate"
	"github.com/baharkarakas/onboarding-backend/internal/audit"
	"github.com/baharkarakas/onboarding-backend/internal/metrics"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/policy"
	repo "github.com/baharkarakas/onboarding-backend/internal/repository"
	"github.com/baharkarakas/onboarding-backend/internal/worker"
)

// RequirementService runs every requirement operation as
// authorize -> mutate -> audit -> return.
type RequirementService struct {
	reqs   repo.Requirements
	policy *policy.Engine
	audit  *auditRecorder
	lg     *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewRequirementService(r repo.Requirements, l repo.AuditLogs, pe *policy.Engine, wp *worker.Pool, lg *slog.Logger, pubs ...audit.Publisher) *RequirementService {
	if lg == nil {
		lg = slog.Default()
	}
	return &RequirementService{
		reqs:   r,
		policy: pe,
		audit:  newAuditRecorder(l, wp, lg, pubs...),
		lg:     lg,
		tracer: otel.Tracer("github.com/baharkarakas/onboarding-backend/internal/services"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Column widths of account_requirements.
const (
	maxClientNameLen = 255
	maxClientIDLen   = 100
	maxRegionLen     = 100
)

var knownStatuses = []string{
	string(models.StatusDraft),
	string(models.StatusSubmitted),
	string(models.StatusApproved),
	string(models.StatusRejected),
}

type CreateRequirementInput struct {
	ClientName   string                   `json:"clientName"`
	ClientID     string                   `json:"clientId"`
	Region       string                   `json:"region"`
	ResponseJSON string                   `json:"responseJson"`
	Status       models.RequirementStatus `json:"status"`
}

func (in CreateRequirementInput) validate() error {
	checks := []*validate.ErrField{
		validate.Required(models.FieldClientName, in.ClientName),
		validate.Required(models.FieldClientID, in.ClientID),
		validate.Required(models.FieldRegion, in.Region),
		validate.MaxLen(models.FieldClientName, in.ClientName, maxClientNameLen),
		validate.MaxLen(models.FieldClientID, in.ClientID, maxClientIDLen),
		validate.MaxLen(models.FieldRegion, in.Region, maxRegionLen),
	}
	if in.ResponseJSON != "" {
		checks = append(checks, validate.JSON(models.FieldResponseJSON, in.ResponseJSON))
	}
	if in.Status != "" {
		checks = append(checks, validate.OneOf(models.FieldStatus, string(in.Status), knownStatuses...))
	}
	return validate.Collect(checks...)
}

// UpdateRequirementInput is a partial update: nil fields (absent or JSON null) are left unchanged.
type UpdateRequirementInput struct {
	ClientName   *string                   `json:"clientName"`
	ClientID     *string                   `json:"clientId"`
	Region       *string                   `json:"region"`
	ResponseJSON *string                   `json:"responseJson"`
	Status       *models.RequirementStatus `json:"status"`
}

func (in UpdateRequirementInput) validate() error {
	checks := []*validate.ErrField{
		validate.NotBlank(models.FieldClientName, in.ClientName),
		validate.NotBlank(models.FieldClientID, in.ClientID),
		validate.NotBlank(models.FieldRegion, in.Region),
	}
	if in.ClientName != nil {
		checks = append(checks, validate.MaxLen(models.FieldClientName, *in.ClientName, maxClientNameLen))
	}
	if in.ClientID != nil {
		checks = append(checks, validate.MaxLen(models.FieldClientID, *in.ClientID, maxClientIDLen))
	}
	if in.Region != nil {
		checks = append(checks, validate.MaxLen(models.FieldRegion, *in.Region, maxRegionLen))
	}
	if in.ResponseJSON != nil {
		checks = append(checks, validate.JSON(models.FieldResponseJSON, *in.ResponseJSON))
	}
	if in.Status != nil {
		checks = append(checks, validate.OneOf(models.FieldStatus, string(*in.Status), knownStatuses...))
	}
	return validate.Collect(checks...)
}

// apply writes the supplied fields onto r and returns them as audit changes.
func (in UpdateRequirementInput) apply(r *models.Requirement) map[string]any {
	changes := map[string]any{}
	if in.ClientName != nil {
		r.ClientName = *in.ClientName
		changes[models.FieldClientName] = *in.ClientName
	}
	if in.ClientID != nil {
		r.ClientID = *in.ClientID
		changes[models.FieldClientID] = *in.ClientID
	}
	if in.Region != nil {
		r.Region = *in.Region
		changes[models.FieldRegion] = *in.Region
	}
	if in.ResponseJSON != nil {
		r.ResponseJSON = *in.ResponseJSON
	}
	if in.Status != nil {
		r.Status = *in.Status
		changes[models.FieldStatus] = string(*in.Status)
	}
	return changes
}

// ----------------- Commands -----------------

func (s *RequirementService) Create(ctx context.Context, actor policy.Actor, in CreateRequirementInput) (_ models.Requirement, err error) {
	ctx, span := s.start(ctx, "Create", actor, 0)
	defer func() { s.finish(span, "create", err) }()

	if err := in.validate(); err != nil {
		return models.Requirement{}, err
	}
	r := models.Requirement{
		UserID:       actor.ID,
		ClientName:   in.ClientName,
		ClientID:     in.ClientID,
		Region:       in.Region,
		ResponseJSON: in.ResponseJSON,
		Status:       in.Status,
	}
	if r.Status == "" {
		r.Status = models.StatusDraft
	}
	if r.ResponseJSON == "" {
		r.ResponseJSON = "{}"
	}
	r.CreatedAt = s.now()
	r.UpdatedAt = r.CreatedAt
	if err := s.authorize(ctx, actor, policy.ActionCreate, r); err != nil {
		return models.Requirement{}, err
	}

	created, err := s.reqs.Create(ctx, r)
	if err != nil {
		return models.Requirement{}, s.internal(ctx, "create requirement", err)
	}
	s.audit.record(ctx, actor.ID, created.ID, models.AuditCreate, created.Snapshot(), nil)
	return created, nil
}

func (s *RequirementService) Update(ctx context.Context, actor policy.Actor, id int64, in UpdateRequirementInput) (_ models.Requirement, err error) {
	ctx, span := s.start(ctx, "Update", actor, id)
	defer func() { s.finish(span, "update", err) }()

	if err := in.validate(); err != nil {
		return models.Requirement{}, err
	}
	r, err := s.fetch(ctx, actor, id)
	if err != nil {
		return models.Requirement{}, err
	}
	if err := s.authorize(ctx, actor, policy.ActionUpdate, r); err != nil {
		return models.Requirement{}, err
	}

	previous := r.Snapshot()
	changes := in.apply(&r)
	if actor.IsAdmin() {
		changes[models.FieldAdminEdit] = true
	}
	r.UpdatedAt = s.now()

	updated, err := s.persist(ctx, r)
	if err != nil {
		return models.Requirement{}, err
	}
	s.audit.record(ctx, actor.ID, id, models.AuditUpdate, changes, previous)
	return updated, nil
}

func (s *RequirementService) Delete(ctx context.Context, actor policy.Actor, id int64) (err error) {
	ctx, span := s.start(ctx, "Delete", actor, id)
	defer func() { s.finish(span, "delete", err) }()

	r, err := s.fetch(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, actor, policy.ActionDelete, r); err != nil {
		return err
	}

	previous := r.Snapshot()
	if err := s.reqs.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return s.internal(ctx, "delete requirement", err)
	}
	s.audit.record(ctx, actor.ID, id, models.AuditDelete, map[string]any{models.FieldDeleted: true}, previous)
	return nil
}

func (s *RequirementService) ChangeStatus(ctx context.Context, actor policy.Actor, id int64, status models.RequirementStatus) (_ models.Requirement, err error) {
	ctx, span := s.start(ctx, "ChangeStatus", actor, id)
	defer func() { s.finish(span, "status_change", err) }()

	if err := s.gate(ctx, actor, policy.ActionChangeStatus); err != nil {
		return models.Requirement{}, err
	}
	if err := validate.Collect(validate.OneOf(models.FieldStatus, string(status), knownStatuses...)); err != nil {
		return models.Requirement{}, err
	}
	r, err := s.fetch(ctx, actor, id)
	if err != nil {
		return models.Requirement{}, err
	}
	if err := s.authorize(ctx, actor, policy.ActionChangeStatus, r); err != nil {
		return models.Requirement{}, err
	}

	previous := map[string]any{models.FieldStatus: string(r.Status)}
	r.Status = status
	r.UpdatedAt = s.now()

	updated, err := s.persist(ctx, r)
	if err != nil {
		return models.Requirement{}, err
	}
	s.audit.record(ctx, actor.ID, id, models.AuditStatusChange, map[string]any{models.FieldStatus: string(status)}, previous)
	return updated, nil
}

func (s *RequirementService) Lock(ctx context.Context, actor policy.Actor, id int64) (models.Requirement, error) {
	return s.setLocked(ctx, actor, id, true)
}

func (s *RequirementService) Unlock(ctx context.Context, actor policy.Actor, id int64) (models.Requirement, error) {
	return s.setLocked(ctx, actor, id, false)
}

func (s *RequirementService) setLocked(ctx context.Context, actor policy.Actor, id int64, locked bool) (_ models.Requirement, err error) {
	action, auditAction, op, name := policy.ActionUnlock, models.AuditUnlock, "unlock", "Unlock"
	if locked {
		action, auditAction, op, name = policy.ActionLock, models.AuditLock, "lock", "Lock"
	}
	ctx, span := s.start(ctx, name, actor, id)
	span.SetAttributes(attribute.Bool("requirement.locked", locked))
	defer func() { s.finish(span, op, err) }()

	if err := s.gate(ctx, actor, action); err != nil {
		return models.Requirement{}, err
	}
	r, err := s.fetch(ctx, actor, id)
	if err != nil {
		return models.Requirement{}, err
	}
	if err := s.authorize(ctx, actor, action, r); err != nil {
		return models.Requirement{}, err
	}

	r.IsLocked = locked
	r.UpdatedAt = s.now()

	updated, err := s.persist(ctx, r)
	if err != nil {
		return models.Requirement{}, err
	}
	s.audit.record(ctx, actor.ID, id, auditAction,
		map[string]any{models.FieldIsLocked: locked},
		map[string]any{models.FieldIsLocked: !locked})
	return updated, nil
}

// ----------------- Queries -----------------

// Get applies the ownership filter unless actor is Admin. Reads are not audited.
func (s *RequirementService) Get(ctx context.Context, actor policy.Actor, id int64) (_ models.Requirement, err error) {
	ctx, span := s.start(ctx, "Get", actor, id)
	defer func() { s.finish(span, "get", err) }()

	r, err := s.fetch(ctx, actor, id)
	if err != nil {
		return models.Requirement{}, err
	}
	if err := s.authorize(ctx, actor, policy.ActionRead, r); err != nil {
		return models.Requirement{}, err
	}
	return r, nil
}

// Download returns the stored wizard payload and its attachment file name.
func (s *RequirementService) Download(ctx context.Context, actor policy.Actor, id int64) (string, []byte, error) {
	r, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("requirement_%s_%d.json", r.ClientID, r.ID), []byte(r.ResponseJSON), nil
}

func (s *RequirementService) ListMine(ctx context.Context, actor policy.Actor) (_ []models.Requirement, err error) {
	ctx, span := s.start(ctx, "ListMine", actor, 0)
	defer func() { s.finish(span, "list_mine", err) }()

	out, err := s.reqs.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, s.internal(ctx, "list requirements", err)
	}
	return nonNil(out), nil
}

func (s *RequirementService) ListAll(ctx context.Context, actor policy.Actor) (_ []models.Requirement, err error) {
	ctx, span := s.start(ctx, "ListAll", actor, 0)
	defer func() { s.finish(span, "list_all", err) }()

	if err := s.gate(ctx, actor, policy.ActionListAll); err != nil {
		return nil, err
	}
	out, err := s.reqs.ListAll(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list all requirements", err)
	}
	return nonNil(out), nil
}

// AuditHistory returns the entries for requirementID newest first. History
// outlives the requirement, so a deleted id still returns its entries.
func (s *RequirementService) AuditHistory(ctx context.Context, actor policy.Actor, requirementID int64) (_ []models.AuditLogView, err error) {
	ctx, span := s.start(ctx, "AuditHistory", actor, requirementID)
	defer func() { s.finish(span, "audit_history", err) }()

	if err := s.gate(ctx, actor, policy.ActionReadAudit); err != nil {
		return nil, err
	}
	entries, err := s.audit.log.ListByRequirement(ctx, requirementID)
	if err != nil {
		return nil, s.internal(ctx, "list audit history", err)
	}
	entries = nonNil(entries)
	for i := range entries {
		entries[i].UserName = models.DisplayName(entries[i].ActorFullName, entries[i].UserEmail)
	}
	return entries, nil
}

// ----------------- Helpers -----------------

// fetch is the ownership-scoped read: Users only ever see their own rows.
func (s *RequirementService) fetch(ctx context.Context, actor policy.Actor, id int64) (models.Requirement, error) {
	var (
		r   models.Requirement
		err error
	)
	if actor.IsAdmin() {
		r, err = s.reqs.GetByID(ctx, id)
	} else {
		r, err = s.reqs.GetOwned(ctx, id, actor.ID)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return models.Requirement{}, ErrNotFound
	}
	if err != nil {
		return models.Requirement{}, s.internal(ctx, "load requirement", err)
	}
	return r, nil
}

func (s *RequirementService) persist(ctx context.Context, r models.Requirement) (models.Requirement, error) {
	updated, err := s.reqs.Update(ctx, r)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Requirement{}, ErrNotFound
	}
	if err != nil {
		return models.Requirement{}, s.internal(ctx, "update requirement", err)
	}
	return updated, nil
}

// authorize maps a denial onto the caller-visible taxonomy: not owned looks
// like not found, locked and role denials are forbidden.
func (s *RequirementService) authorize(ctx context.Context, actor policy.Actor, action policy.Action, r models.Requirement) error {
	d := s.policy.Decide(ctx, actor, action, policy.ResourceOf(r))
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case policy.ReasonNotOwner:
		return ErrNotFound
	case policy.ReasonLocked:
		return ErrLocked
	default:
		return ErrForbidden
	}
}

// gate rejects admin-only operations before any lookup.
func (s *RequirementService) gate(ctx context.Context, actor policy.Actor, action policy.Action) error {
	if s.policy.Decide(ctx, actor, action, policy.Resource{}).Allowed {
		return nil
	}
	return ErrForbidden
}

func (s *RequirementService) internal(ctx context.Context, what string, err error) error {
	s.lg.ErrorContext(ctx, what+" failed", "err", err)
	return fmt.Errorf("%s: %w", what, err)
}

func (s *RequirementService) start(ctx context.Context, name string, actor policy.Actor, id int64) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, "requirements."+name)
	span.SetAttributes(
		attribute.Int64("actor.id", actor.ID),
		attribute.String("actor.role", string(actor.Role)),
	)
	if id != 0 {
		span.SetAttributes(attribute.Int64("requirement.id", id))
	}
	return ctx, span
}

func (s *RequirementService) finish(span trace.Span, op string, err error) {
	o := outcome(err)
	metrics.RequirementOps.WithLabelValues(op, o).Inc()
	if o == "error" {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func outcome(err error) string {
	var verrs validate.Errs
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.As(err, &verrs):
		return "invalid"
	default:
		return "error"
	}
}
