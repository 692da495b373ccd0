package models

import (
	"time"
)

// Status represents the lifecycle state of a task
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOverdue    Status = "OVERDUE"
)

// Valid reports whether s is one of the known task statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusPending, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Task represents a unit of work inside a project.
// Dependencies links the tasks that must be COMPLETED before this task may
// enter IN_PROGRESS. InProgressAt/CompletedAt are write-once: they record
// the first entry into the corresponding state.
type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description"`
	Status       Status     `json:"status" gorm:"not null;default:'NOT_STARTED'"`
	AssigneeID   *string    `json:"assigneeId" gorm:"column:assignee_id"`
	ProjectID    uint       `json:"projectId" gorm:"column:project_id;not null;index"`
	WorkflowID   *uint      `json:"workflowId" gorm:"column:workflow_id;index"`
	DueDate      *time.Time `json:"dueDate" gorm:"column:due_date"`
	InProgressAt *time.Time `json:"inProgressAt" gorm:"column:in_progress_at"`
	CompletedAt  *time.Time `json:"completedAt" gorm:"column:completed_at"`
	Dependencies []*Task    `json:"dependencies,omitempty" gorm:"many2many:task_dependencies;joinForeignKey:TaskID;joinReferences:DependsOnID"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
