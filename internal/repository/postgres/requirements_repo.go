package postgres

import (
	"context"
	"time"

	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type requirementsRepo struct{ pool *pgxpool.Pool }

func NewRequirements(pool *pgxpool.Pool) repository.Requirements {
	return &requirementsRepo{pool: pool}
}

const selectRequirement = `
SELECT r.id, r.user_id, r.client_name, r.client_id, r.region, r.response_json,
       r.status, r.is_locked, r.created_at, r.updated_at, u.email, u.full_name
  FROM account_requirements r
  LEFT JOIN users u ON u.id = r.user_id`

func scanRequirement(row pgx.Row) (models.Requirement, error) {
	var m models.Requirement
	err := row.Scan(&m.ID, &m.UserID, &m.ClientName, &m.ClientID, &m.Region, &m.ResponseJSON,
		&m.Status, &m.IsLocked, &m.CreatedAt, &m.UpdatedAt, &m.UserEmail, &m.UserFullName)
	return m, err
}

func (r *requirementsRepo) Create(ctx context.Context, m models.Requirement) (models.Requirement, error) {
	// created_at and updated_at share the caller's clock
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO account_requirements
		   (user_id, client_name, client_id, region, response_json, status, is_locked, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		m.UserID, m.ClientName, m.ClientID, m.Region, m.ResponseJSON, string(m.Status), m.IsLocked,
		m.CreatedAt, m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return models.Requirement{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

func (r *requirementsRepo) GetByID(ctx context.Context, id int64) (models.Requirement, error) {
	m, err := scanRequirement(r.pool.QueryRow(ctx, selectRequirement+` WHERE r.id=$1`, id))
	return m, translate(err)
}

func (r *requirementsRepo) GetOwned(ctx context.Context, id, ownerID int64) (models.Requirement, error) {
	m, err := scanRequirement(r.pool.QueryRow(ctx,
		selectRequirement+` WHERE r.id=$1 AND r.user_id=$2`, id, ownerID))
	return m, translate(err)
}

func (r *requirementsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]models.Requirement, error) {
	return r.list(ctx, selectRequirement+` WHERE r.user_id=$1 ORDER BY r.created_at DESC, r.id DESC`, ownerID)
}

func (r *requirementsRepo) ListAll(ctx context.Context) ([]models.Requirement, error) {
	return r.list(ctx, selectRequirement+` ORDER BY r.created_at DESC, r.id DESC`)
}

func (r *requirementsRepo) list(ctx context.Context, q string, args ...any) ([]models.Requirement, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Requirement{}
	for rows.Next() {
		m, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *requirementsRepo) Update(ctx context.Context, m models.Requirement) (models.Requirement, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account_requirements
		    SET client_name=$2, client_id=$3, region=$4, response_json=$5,
		        status=$6, is_locked=$7, updated_at=$8
		  WHERE id=$1`,
		m.ID, m.ClientName, m.ClientID, m.Region, m.ResponseJSON, string(m.Status), m.IsLocked, m.UpdatedAt,
	)
	if err != nil {
		return models.Requirement{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return models.Requirement{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, m.ID)
}

func (r *requirementsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM account_requirements WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
