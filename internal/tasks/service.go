package tasks

import (
	"time"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// managerRoles may assign tasks and create tasks with dependencies.
var managerRoles = []models.Role{models.RoleProjectManager, models.RoleOrgAdmin}

// Service is the dependency-aware task state machine. Every mutation runs
// read-check-write plus its audit entry inside one transaction, so a failed
// precondition leaves neither a partial record change nor a stray audit row.
type Service struct {
	db *gorm.DB

	// statusUpdateRoles restricts UpdateTaskStatus when non-empty.
	// Empty means any authenticated user may change a status.
	statusUpdateRoles []models.Role
}

// NewService returns a Service bound to db. statusUpdateRoles optionally
// gates UpdateTaskStatus; leave it empty to allow any authenticated user.
func NewService(db *gorm.DB, statusUpdateRoles ...models.Role) *Service {
	return &Service{db: db, statusUpdateRoles: statusUpdateRoles}
}

// CreateTaskInput carries the fields for CreateTaskWithDependencies.
type CreateTaskInput struct {
	Name          string
	Description   string
	AssigneeID    *string
	ProjectID     uint
	WorkflowID    *uint
	DueDate       *time.Time
	DependencyIDs []uint
}

// snapshotOf copies a task without its dependency association so audit
// diffs cover only the task's own columns.
func snapshotOf(task models.Task) models.Task {
	task.Dependencies = nil
	return task
}

// AssignTask sets the assignee and forces the task into IN_PROGRESS.
// This is the explicit "start work now" override: unlike UpdateTaskStatus
// it does not consult the dependency gate. InProgressAt is stamped only on
// the first entry into IN_PROGRESS.
func (s *Service) AssignTask(taskID uint, assigneeID string, actor auth.Identity) (*models.Task, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}

	var updated models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Preload("Dependencies").First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return errors.Wrap(err, "loading task")
		}

		previous := snapshotOf(task)

		task.AssigneeID = &assigneeID
		task.Status = models.StatusInProgress
		if task.InProgressAt == nil {
			now := time.Now()
			task.InProgressAt = &now
		}

		if err := tx.Omit(clause.Associations).Save(&task).Error; err != nil {
			return errors.Wrap(err, "saving task")
		}
		if err := audit.Record(tx, models.TargetTask, task.ID, models.ActionUpdate, previous, snapshotOf(task), actor.ID); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateTaskStatus transitions a task to newStatus. Entry into IN_PROGRESS
// is gated: every dependency must already be COMPLETED, otherwise the call
// fails with the blocking ids and nothing is written. Timestamps are
// write-once; repeated entries into a state keep the original stamp.
func (s *Service) UpdateTaskStatus(taskID uint, newStatus models.Status, actor auth.Identity) (*models.Task, error) {
	if !newStatus.Valid() {
		return nil, &InvalidStatusError{Status: string(newStatus)}
	}
	if err := auth.Authorize(actor, s.statusUpdateRoles...); err != nil {
		return nil, err
	}

	var updated models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Preload("Dependencies").First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return errors.Wrap(err, "loading task")
		}

		if newStatus == models.StatusInProgress {
			var blocking []uint
			for _, dep := range task.Dependencies {
				if dep.Status != models.StatusCompleted {
					blocking = append(blocking, dep.ID)
				}
			}
			if len(blocking) > 0 {
				return &DependencyNotCompletedError{Blocking: blocking}
			}
		}

		previous := snapshotOf(task)

		task.Status = newStatus
		now := time.Now()
		if newStatus == models.StatusInProgress && task.InProgressAt == nil {
			task.InProgressAt = &now
		}
		if newStatus == models.StatusCompleted && task.CompletedAt == nil {
			task.CompletedAt = &now
		}

		if err := tx.Omit(clause.Associations).Save(&task).Error; err != nil {
			return errors.Wrap(err, "saving task")
		}
		if err := audit.Record(tx, models.TargetTask, task.ID, models.ActionUpdate, previous, snapshotOf(task), actor.ID); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateTaskWithDependencies creates a task linked to existing dependency
// tasks. All dependency ids must resolve; otherwise the call reports the
// missing ids and no task is created.
func (s *Service) CreateTaskWithDependencies(input CreateTaskInput, actor auth.Identity) (*models.Task, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	if input.Name == "" || input.ProjectID == 0 {
		return nil, ErrMissingFields
	}

	var created models.Task
	err := s.db.Transaction(func(tx *gorm.DB) error {
		deps, err := ResolveDependencies(tx, input.DependencyIDs)
		if err != nil {
			return err
		}

		task := models.Task{
			Name:         input.Name,
			Description:  input.Description,
			Status:       models.StatusNotStarted,
			AssigneeID:   input.AssigneeID,
			ProjectID:    input.ProjectID,
			WorkflowID:   input.WorkflowID,
			DueDate:      input.DueDate,
			Dependencies: deps,
		}
		if err := tx.Create(&task).Error; err != nil {
			return errors.Wrap(err, "creating task")
		}
		if err := audit.Record(tx, models.TargetTask, task.ID, models.ActionCreate, nil, snapshotOf(task), actor.ID); err != nil {
			return err
		}
		created = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ResolveDependencies loads the referenced tasks and fails with the ids
// that were not found.
func ResolveDependencies(tx *gorm.DB, ids []uint) ([]*models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var deps []*models.Task
	if err := tx.Where("id IN ?", ids).Find(&deps).Error; err != nil {
		return nil, errors.Wrap(err, "resolving dependencies")
	}
	if len(deps) != len(ids) {
		found := make(map[uint]bool, len(deps))
		for _, dep := range deps {
			found[dep.ID] = true
		}
		var missing []uint
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, &MissingDependencyError{Missing: missing}
	}
	return deps, nil
}

// GetTask loads one task with its dependencies.
func (s *Service) GetTask(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Dependencies").First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, errors.Wrap(err, "loading task")
	}
	return &task, nil
}

// MarkOverdueTasks flips every task whose due date has elapsed and that is
// neither COMPLETED nor already OVERDUE. Invoked by the daily clock trigger.
func (s *Service) MarkOverdueTasks(now time.Time) (int64, error) {
	result := s.db.Model(&models.Task{}).
		Where("due_date IS NOT NULL AND due_date <= ?", now).
		Where("status NOT IN ?", []models.Status{models.StatusCompleted, models.StatusOverdue}).
		Update("status", models.StatusOverdue)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "marking overdue tasks")
	}
	return result.RowsAffected, nil
}
