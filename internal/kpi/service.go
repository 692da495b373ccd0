package kpi

import (
	"time"

	"github.com/Luapxanna/ops-pilot/internal/cache"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Memo keys for the time-boxed KPI cache.
const (
	keyCompletion       = "taskCompletionPercentage"
	keyProjectDurations = "projectDurationMetrics"
	keyEfficiency       = "employeeEfficiency"
)

// memoTTL bounds how stale a cached KPI may get between daily refreshes.
const memoTTL = 24 * time.Hour

// ProjectDuration is one project's planned duration in days.
type ProjectDuration struct {
	ProjectID   uint     `json:"projectId"`
	ProjectName string   `json:"projectName"`
	Duration    *float64 `json:"duration"`
}

// EmployeeEfficiency aggregates how fast an assignee completes tasks.
type EmployeeEfficiency struct {
	AssigneeID        string  `json:"assigneeId"`
	TotalTasks        int     `json:"totalTasks"`
	AvgCompletionTime float64 `json:"avgCompletionTime"`
}

// Service computes read-side KPIs over stored records, memoized for 24h.
type Service struct {
	db   *gorm.DB
	memo *cache.Memo[string, any]
}

// NewService returns a Service bound to db with an empty memo.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db, memo: cache.NewMemo[string, any]()}
}

// TaskCompletionPercentage is the share of tasks in COMPLETED, 0..100.
func (s *Service) TaskCompletionPercentage() (float64, error) {
	if v, ok := s.memo.Get(keyCompletion); ok {
		return v.(float64), nil
	}

	type row struct {
		Status models.Status
		Count  int64
	}
	var rows []row
	if err := s.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "grouping tasks by status")
	}

	var total, completed int64
	for _, r := range rows {
		total += r.Count
		if r.Status == models.StatusCompleted {
			completed = r.Count
		}
	}
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	s.memo.Set(keyCompletion, pct, memoTTL)
	return pct, nil
}

// ProjectDurationMetrics lists each project's planned duration in days;
// nil when the project has no end date.
func (s *Service) ProjectDurationMetrics() ([]ProjectDuration, error) {
	if v, ok := s.memo.Get(keyProjectDurations); ok {
		return v.([]ProjectDuration), nil
	}

	var projects []models.Project
	if err := s.db.Find(&projects).Error; err != nil {
		return nil, errors.Wrap(err, "fetching projects")
	}

	metrics := make([]ProjectDuration, 0, len(projects))
	for _, p := range projects {
		metric := ProjectDuration{ProjectID: p.ID, ProjectName: p.Name}
		if !p.EndDate.IsZero() {
			days := p.EndDate.Sub(p.StartDate).Hours() / 24
			metric.Duration = &days
		}
		metrics = append(metrics, metric)
	}
	s.memo.Set(keyProjectDurations, metrics, memoTTL)
	return metrics, nil
}

// TopEmployeesByEfficiency folds completed tasks into per-assignee average
// completion time (days from first IN_PROGRESS to COMPLETED).
func (s *Service) TopEmployeesByEfficiency() ([]EmployeeEfficiency, error) {
	if v, ok := s.memo.Get(keyEfficiency); ok {
		return v.([]EmployeeEfficiency), nil
	}

	var completed []models.Task
	if err := s.db.Where("completed_at IS NOT NULL").Find(&completed).Error; err != nil {
		return nil, errors.Wrap(err, "fetching completed tasks")
	}

	type acc struct {
		tasks int
		days  float64
	}
	byAssignee := make(map[string]*acc)
	var order []string
	for _, task := range completed {
		if task.AssigneeID == nil || task.InProgressAt == nil || task.CompletedAt == nil {
			continue
		}
		id := *task.AssigneeID
		if _, ok := byAssignee[id]; !ok {
			byAssignee[id] = &acc{}
			order = append(order, id)
		}
		byAssignee[id].tasks++
		byAssignee[id].days += task.CompletedAt.Sub(*task.InProgressAt).Hours() / 24
	}

	result := make([]EmployeeEfficiency, 0, len(order))
	for _, id := range order {
		a := byAssignee[id]
		result = append(result, EmployeeEfficiency{
			AssigneeID:        id,
			TotalTasks:        a.tasks,
			AvgCompletionTime: a.days / float64(a.tasks),
		})
	}
	s.memo.Set(keyEfficiency, result, memoTTL)
	return result, nil
}

// Refresh recomputes every KPI and repopulates the memo. Invoked by the
// daily clock trigger.
func (s *Service) Refresh() error {
	s.memo.Clear()
	if _, err := s.TaskCompletionPercentage(); err != nil {
		return err
	}
	if _, err := s.ProjectDurationMetrics(); err != nil {
		return err
	}
	if _, err := s.TopEmployeesByEfficiency(); err != nil {
		return err
	}
	return nil
}
