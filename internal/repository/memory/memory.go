// Package memory holds process-local stores used by STORE=memory and by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository"
)

// Store backs all three repository interfaces with one mutex so owner joins stay consistent.
type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	users        map[int64]models.User
	requirements map[int64]models.Requirement
	audit        []models.AuditLogEntry
	nextUser     int64
	nextReq      int64
	nextAudit    int64
}

func New() *Store {
	return &Store{
		now:          time.Now,
		users:        map[int64]models.User{},
		requirements: map[int64]models.Requirement{},
	}
}

// WithClock replaces the time source; tests use it to get distinct, ordered timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() repository.Users               { return usersView{s} }
func (s *Store) Requirements() repository.Requirements { return requirementsView{s} }
func (s *Store) AuditLogs() repository.AuditLogs       { return auditView{s} }

// DeleteUser removes a user record; audit history keeps referencing the id.
func (s *Store) DeleteUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type usersView struct{ s *Store }

func (v usersView) Create(_ context.Context, email, hash, fullName string, role models.Role) (models.User, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.users {
		if strings.EqualFold(u.Email, email) {
			return models.User{}, repository.ErrConflict
		}
	}
	v.s.nextUser++
	u := models.User{
		ID:           v.s.nextUser,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		CreatedAt:    v.s.now(),
	}
	v.s.users[u.ID] = u
	return u, nil
}

func (v usersView) GetByID(_ context.Context, id int64) (models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	u, ok := v.s.users[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (v usersView) GetByEmail(_ context.Context, email string) (models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	for _, u := range v.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

type requirementsView struct{ s *Store }

// withOwner must be called with the lock held.
func (v requirementsView) withOwner(r models.Requirement) models.Requirement {
	if u, ok := v.s.users[r.UserID]; ok {
		email, name := u.Email, u.FullName
		r.UserEmail, r.UserFullName = &email, &name
	}
	return r
}

func (v requirementsView) Create(_ context.Context, r models.Requirement) (models.Requirement, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.nextReq++
	r.ID = v.s.nextReq
	if r.CreatedAt.IsZero() {
		r.CreatedAt = v.s.now()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = r.CreatedAt
	}
	r.UserEmail, r.UserFullName = nil, nil
	v.s.requirements[r.ID] = r
	return v.withOwner(r), nil
}

func (v requirementsView) GetByID(_ context.Context, id int64) (models.Requirement, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	r, ok := v.s.requirements[id]
	if !ok {
		return models.Requirement{}, repository.ErrNotFound
	}
	return v.withOwner(r), nil
}

func (v requirementsView) GetOwned(_ context.Context, id, ownerID int64) (models.Requirement, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	r, ok := v.s.requirements[id]
	if !ok || r.UserID != ownerID {
		return models.Requirement{}, repository.ErrNotFound
	}
	return v.withOwner(r), nil
}

func (v requirementsView) ListByOwner(_ context.Context, ownerID int64) ([]models.Requirement, error) {
	return v.list(func(r models.Requirement) bool { return r.UserID == ownerID }), nil
}

func (v requirementsView) ListAll(_ context.Context) ([]models.Requirement, error) {
	return v.list(func(models.Requirement) bool { return true }), nil
}

func (v requirementsView) list(keep func(models.Requirement) bool) []models.Requirement {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := []models.Requirement{}
	for _, r := range v.s.requirements {
		if keep(r) {
			out = append(out, v.withOwner(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (v requirementsView) Update(_ context.Context, r models.Requirement) (models.Requirement, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cur, ok := v.s.requirements[r.ID]
	if !ok {
		return models.Requirement{}, repository.ErrNotFound
	}
	cur.ClientName = r.ClientName
	cur.ClientID = r.ClientID
	cur.Region = r.Region
	cur.ResponseJSON = r.ResponseJSON
	cur.Status = r.Status
	cur.IsLocked = r.IsLocked
	cur.UpdatedAt = r.UpdatedAt
	v.s.requirements[r.ID] = cur
	return v.withOwner(cur), nil
}

func (v requirementsView) Delete(_ context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.requirements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.requirements, id)
	return nil
}

type auditView struct{ s *Store }

func (v auditView) Append(_ context.Context, e models.AuditLogEntry) (models.AuditLogEntry, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.nextAudit++
	e.ID = v.s.nextAudit
	e.CreatedAt = v.s.now()
	e.Changes = copyMap(e.Changes)
	if e.Changes == nil {
		e.Changes = map[string]any{}
	}
	e.PreviousValues = copyMap(e.PreviousValues)
	v.s.audit = append(v.s.audit, e)
	return e, nil
}

func (v auditView) ListByRequirement(_ context.Context, requirementID int64) ([]models.AuditLogView, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := []models.AuditLogView{}
	for i := len(v.s.audit) - 1; i >= 0; i-- {
		e := v.s.audit[i]
		if e.RequirementID != requirementID {
			continue
		}
		view := models.AuditLogView{AuditLogEntry: e}
		if u, ok := v.s.users[e.UserID]; ok {
			email, name := u.Email, u.FullName
			view.UserEmail, view.ActorFullName = &email, &name
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
