package models

import (
	"time"
)

// Organization is the top-level tenant; projects and users hang off it.
type Organization struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Organization Model
func (Organization) TableName() string {
	return "organizations"
}
