package models

import (
	"time"
)

// Workflow is a named bundle of tasks created together inside a project.
type Workflow struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description"`
	ProjectID      uint      `json:"projectId" gorm:"column:project_id;not null;index"`
	OrganizationID uint      `json:"organizationId" gorm:"column:organization_id;not null;index"`
	Tasks          []Task    `json:"tasks,omitempty" gorm:"foreignKey:WorkflowID"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Workflow Model
func (Workflow) TableName() string {
	return "workflows"
}
