package models

import (
	"time"
)

// Project groups tasks and workflows under an organization.
type Project struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Description    string    `json:"description"`
	OrganizationID uint      `json:"organizationId" gorm:"column:organization_id;not null;index"`
	StartDate      time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate        time.Time `json:"endDate" gorm:"column:end_date"`
	Status         string    `json:"status" gorm:"default:'Pending'"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
