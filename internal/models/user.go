package models

import (
	"time"
)

// Role determines which operations a user may perform.
type Role string

const (
	RoleEmployee       Role = "EMPLOYEE"
	RoleProjectManager Role = "PROJECTMANAGER"
	RoleOrgAdmin       Role = "ORGADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleProjectManager, RoleOrgAdmin:
		return true
	}
	return false
}

// User represents an account scoped to one organization.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"unique;not null"`
	Name           string    `json:"name" gorm:"not null"`
	Password       string    `json:"-" gorm:"not null"`
	Role           Role      `json:"role" gorm:"not null;default:'EMPLOYEE'"`
	OrganizationID uint      `json:"organizationId" gorm:"column:organization_id;not null;index"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
