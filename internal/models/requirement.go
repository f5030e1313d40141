package models

import "time"

type RequirementStatus string

const (
	StatusDraft     RequirementStatus = "Draft"
	StatusSubmitted RequirementStatus = "Submitted"
	StatusApproved  RequirementStatus = "Approved"
	StatusRejected  RequirementStatus = "Rejected"
)

// Valid reports whether s is one of the known labels. Any known label may
// follow any other; there is no transition graph.
func (s RequirementStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Requirement is a client's bank-reconciliation account configuration.
// UserEmail and UserFullName are filled by reads that join the owner; they are not stored.
type Requirement struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"userId"`
	ClientName   string            `json:"clientName"`
	ClientID     string            `json:"clientId"`
	Region       string            `json:"region"`
	ResponseJSON string            `json:"responseJson"`
	Status       RequirementStatus `json:"status"`
	IsLocked     bool              `json:"isLocked"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	UserEmail    *string           `json:"userEmail,omitempty"`
	UserFullName *string           `json:"userFullName,omitempty"`
}

// Field names used in audit payloads.
const (
	FieldClientName   = "clientName"
	FieldClientID     = "clientId"
	FieldRegion       = "region"
	FieldStatus       = "status"
	FieldResponseJSON = "responseJson"
	FieldIsLocked     = "isLocked"
	FieldAdminEdit    = "adminEdit"
	FieldDeleted      = "deleted"
)

// Snapshot returns the audited subset of r.
func (r Requirement) Snapshot() map[string]any {
	return map[string]any{
		FieldClientName: r.ClientName,
		FieldClientID:   r.ClientID,
		FieldRegion:     r.Region,
		FieldStatus:     string(r.Status),
	}
}
