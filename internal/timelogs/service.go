package timelogs

import (
	"time"

	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrInvalidTimeLog rejects a log with missing fields or negative hours.
var ErrInvalidTimeLog = errors.New("time log requires a task, a user, a date and non-negative hours")

// Service records and aggregates hours logged against tasks.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// LogTime appends one time log row. Time logs are never mutated afterwards.
func (s *Service) LogTime(taskID uint, userID string, date time.Time, hours float64) (*models.TimeLog, error) {
	if taskID == 0 || userID == "" || date.IsZero() || hours < 0 {
		return nil, ErrInvalidTimeLog
	}
	log := models.TimeLog{
		TaskID: taskID,
		UserID: userID,
		Date:   date,
		Hours:  hours,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, errors.Wrap(err, "creating time log")
	}
	return &log, nil
}

// ByTask returns all time logs recorded against a task.
func (s *Service) ByTask(taskID uint) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	if err := s.db.Where("task_id = ?", taskID).Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "fetching time logs")
	}
	return logs, nil
}

// WeeklySummary is a user's total logged hours for the current week plus
// an advisory warning.
type WeeklySummary struct {
	TotalHours float64 `json:"totalHours"`
	Warning    string  `json:"warning"`
}

// WeeklyHours sums a user's hours for the week containing ref. Weeks run
// Monday through Sunday.
func (s *Service) WeeklyHours(userID string, ref time.Time) (*WeeklySummary, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	start, end := weekBounds(ref)
	var logs []models.TimeLog
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "fetching weekly time logs")
	}

	total := 0.0
	for _, log := range logs {
		total += log.Hours
	}

	warning := "No warnings for this week."
	if total > 40 {
		warning = "Warning: Total hours worked this week exceed 40 hours."
	} else if total < 20 {
		warning = "Warning: Total hours worked this week are less than 20 hours."
	}

	return &WeeklySummary{TotalHours: total, Warning: warning}, nil
}

// weekBounds returns the Monday 00:00 and Sunday 23:59:59 around ref.
func weekBounds(ref time.Time) (time.Time, time.Time) {
	weekday := int(ref.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week it ends
	}
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -(weekday - 1))
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}
