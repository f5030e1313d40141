package models

import "time"

type AuditAction string

const (
	AuditCreate       AuditAction = "CREATE"
	AuditUpdate       AuditAction = "UPDATE"
	AuditDelete       AuditAction = "DELETE"
	AuditStatusChange AuditAction = "STATUS_CHANGE"
	AuditLock         AuditAction = "LOCK"
	AuditUnlock       AuditAction = "UNLOCK"
)

// AuditLogEntry is append-only. PreviousValues is nil for CREATE.
type AuditLogEntry struct {
	ID             int64          `json:"id"`
	RequirementID  int64          `json:"requirementId"`
	UserID         int64          `json:"userId"`
	Action         AuditAction    `json:"action"`
	Changes        map[string]any `json:"changes"`
	PreviousValues map[string]any `json:"previousValues"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// AuditLogView is an entry joined with its actor for display.
type AuditLogView struct {
	AuditLogEntry
	UserName  string  `json:"userName"`
	UserEmail *string `json:"userEmail,omitempty"`

	ActorFullName *string `json:"-"`
}
