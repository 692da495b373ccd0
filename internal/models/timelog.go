package models

import (
	"time"
)

// TimeLog records hours worked against a task. Rows are append-only; they
// feed the KPI and leaderboard folds and are never mutated.
type TimeLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"taskId" gorm:"column:task_id;not null;index"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;index"`
	Date      time.Time `json:"date" gorm:"not null"`
	Hours     float64   `json:"hours" gorm:"not null"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for TimeLog Model
func (TimeLog) TableName() string {
	return "time_logs"
}
