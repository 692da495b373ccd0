package models

import (
	"time"
)

// AuditAction is the kind of mutation an audit entry captures.
type AuditAction string

const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// Audit target tags. Rollback dispatches over these; anything else is
// rejected at the boundary.
const (
	TargetTask         = "Task"
	TargetProject      = "Project"
	TargetWorkflow     = "Workflow"
	TargetOrganization = "Organization"
)

// AuditLog is one immutable before/after snapshot of a mutation.
// CREATE entries have a nil PreviousValue, DELETE entries a nil NewValue,
// UPDATE entries both. EntityID carries the target row's primary key so
// rollback never has to parse the diff summary.
type AuditLog struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	Target        string      `json:"target" gorm:"not null;index"`
	EntityID      uint        `json:"entityId" gorm:"column:entity_id;not null"`
	Action        AuditAction `json:"action" gorm:"not null"`
	PreviousValue *string     `json:"previousValue" gorm:"column:previous_value;type:text"`
	NewValue      *string     `json:"newValue" gorm:"column:new_value;type:text"`
	Data          string      `json:"data" gorm:"type:text"`
	UserID        string      `json:"userId" gorm:"column:user_id;not null"`
	Timestamp     time.Time   `json:"timestamp" gorm:"not null;index"`
}

// TableName specifies the table name for AuditLog Model
func (AuditLog) TableName() string {
	return "audit_logs"
}
