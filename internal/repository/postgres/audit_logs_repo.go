package postgres

import (
	"context"
	"encoding/json"

	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func NewAuditLogs(pool *pgxpool.Pool) repository.AuditLogs {
	return &auditLogsRepo{pool: pool}
}

func (r *auditLogsRepo) Append(ctx context.Context, e models.AuditLogEntry) (models.AuditLogEntry, error) {
	changes, err := json.Marshal(nonNil(e.Changes))
	if err != nil {
		return models.AuditLogEntry{}, err
	}
	var previous []byte
	if e.PreviousValues != nil {
		if previous, err = json.Marshal(e.PreviousValues); err != nil {
			return models.AuditLogEntry{}, err
		}
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO audit_logs(requirement_id, user_id, action, changes, previous_values)
		 VALUES ($1,$2,$3,$4::jsonb,$5::jsonb)
		 RETURNING id, created_at`,
		e.RequirementID, e.UserID, string(e.Action), string(changes), nullableText(previous),
	).Scan(&e.ID, &e.CreatedAt)
	return e, translate(err)
}

func (r *auditLogsRepo) ListByRequirement(ctx context.Context, requirementID int64) ([]models.AuditLogView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.requirement_id, a.user_id, a.action, a.changes, a.previous_values, a.created_at,
		        u.full_name, u.email
		   FROM audit_logs a
		   LEFT JOIN users u ON u.id = a.user_id
		  WHERE a.requirement_id=$1
		  ORDER BY a.created_at DESC, a.id DESC`,
		requirementID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AuditLogView{}
	for rows.Next() {
		var (
			v                 models.AuditLogView
			changes, previous []byte
		)
		if err := rows.Scan(&v.ID, &v.RequirementID, &v.UserID, &v.Action, &changes, &previous, &v.CreatedAt,
			&v.ActorFullName, &v.UserEmail); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changes, &v.Changes); err != nil {
			return nil, err
		}
		if previous != nil {
			if err := json.Unmarshal(previous, &v.PreviousValues); err != nil {
				return nil, err
			}
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func nonNil(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func nullableText(b []byte) *string {
	if b == nil {
		return nil
	}
	s := string(b)
	return &s
}
