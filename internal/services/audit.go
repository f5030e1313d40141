package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/onboarding-backend/internal/audit"
	"github.com/baharkarakas/onboarding-backend/internal/metrics"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	repo "github.com/baharkarakas/onboarding-backend/internal/repository"
	"github.com/baharkarakas/onboarding-backend/internal/worker"
)

// excludedAuditFields never reach changes/previousValues.
var excludedAuditFields = []string{models.FieldResponseJSON}

const publishTimeout = 10 * time.Second

// auditRecorder appends entries after the primary mutation has been persisted.
// A failed append is logged and counted; it never fails or rolls back the caller.
type auditRecorder struct {
	log  repo.AuditLogs
	pubs []audit.Publisher
	wp   *worker.Pool
	lg   *slog.Logger
}

func newAuditRecorder(l repo.AuditLogs, wp *worker.Pool, lg *slog.Logger, pubs ...audit.Publisher) *auditRecorder {
	return &auditRecorder{log: l, pubs: pubs, wp: wp, lg: lg}
}

func (a *auditRecorder) record(ctx context.Context, actor int64, reqID int64, action models.AuditAction, changes, previous map[string]any) {
	entry := models.AuditLogEntry{
		RequirementID:  reqID,
		UserID:         actor,
		Action:         action,
		Changes:        sanitize(changes),
		PreviousValues: sanitize(previous),
	}
	if entry.Changes == nil {
		entry.Changes = map[string]any{}
	}

	saved, err := a.log.Append(ctx, entry)
	if err != nil {
		metrics.AuditWriteFailures.Inc()
		a.lg.ErrorContext(ctx, "audit append failed",
			"err", err, "requirement_id", reqID, "user_id", actor, "action", action)
	} else {
		entry = saved
	}
	a.publish(entry)
}

func (a *auditRecorder) publish(entry models.AuditLogEntry) {
	if a.wp == nil {
		return
	}
	for _, p := range a.pubs {
		p := p
		ok := a.wp.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			if err := p.Publish(ctx, entry); err != nil {
				metrics.AuditPublishFailures.Inc()
				a.lg.Error("audit publish failed", "err", err, "requirement_id", entry.RequirementID, "action", entry.Action)
			}
		})
		if !ok {
			metrics.AuditPublishFailures.Inc()
			a.lg.Warn("audit publish dropped", "requirement_id", entry.RequirementID, "action", entry.Action)
		}
	}
}

// sanitize copies m without the excluded fields; nil stays nil.
func sanitize(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, f := range excludedAuditFields {
		delete(out, f)
	}
	return out
}
