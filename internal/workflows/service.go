package workflows

import (
	"time"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/tasks"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var managerRoles = []models.Role{models.RoleProjectManager, models.RoleOrgAdmin}

// ErrWorkflowNotFound is returned when the referenced workflow does not exist.
var ErrWorkflowNotFound = errors.New("workflow not found")

// Service creates and reads workflows, each a bundle of tasks created in
// one transaction.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// TaskInput describes one task to create inside a new workflow.
// DependencyIDs must reference already-existing tasks.
type TaskInput struct {
	Name          string
	Description   string
	AssigneeID    *string
	Status        models.Status
	DueDate       *time.Time
	DependencyIDs []uint
}

// Create builds a workflow and its tasks atomically. Tasks default to
// PENDING, the workflow-created initial state awaiting scheduling.
func (s *Service) Create(name, description string, projectID uint, taskInputs []TaskInput, actor auth.Identity) (*models.Workflow, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	if name == "" || projectID == 0 {
		return nil, errors.New("missing required fields for workflow creation")
	}

	var created models.Workflow
	err := s.db.Transaction(func(tx *gorm.DB) error {
		workflow := models.Workflow{
			Name:           name,
			Description:    description,
			ProjectID:      projectID,
			OrganizationID: actor.OrganizationID,
		}
		if err := tx.Create(&workflow).Error; err != nil {
			return errors.Wrap(err, "creating workflow")
		}

		for _, in := range taskInputs {
			deps, err := tasks.ResolveDependencies(tx, in.DependencyIDs)
			if err != nil {
				return err
			}
			status := in.Status
			if status == "" {
				status = models.StatusPending
			} else if !status.Valid() {
				return &tasks.InvalidStatusError{Status: string(in.Status)}
			}
			task := models.Task{
				Name:         in.Name,
				Description:  in.Description,
				Status:       status,
				AssigneeID:   in.AssigneeID,
				ProjectID:    projectID,
				WorkflowID:   &workflow.ID,
				DueDate:      in.DueDate,
				Dependencies: deps,
			}
			if err := tx.Create(&task).Error; err != nil {
				return errors.Wrap(err, "creating workflow task")
			}
			workflow.Tasks = append(workflow.Tasks, task)
		}

		snapshot := workflow
		snapshot.Tasks = nil
		if err := audit.Record(tx, models.TargetWorkflow, workflow.ID, models.ActionCreate, nil, snapshot, actor.ID); err != nil {
			return err
		}
		created = workflow
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns the workflows of the actor's organization.
func (s *Service) List(actor auth.Identity) ([]models.Workflow, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	var workflows []models.Workflow
	if err := s.db.Preload("Tasks").Where("organization_id = ?", actor.OrganizationID).Find(&workflows).Error; err != nil {
		return nil, errors.Wrap(err, "listing workflows")
	}
	return workflows, nil
}

// Get loads one workflow with its tasks.
func (s *Service) Get(id uint, actor auth.Identity) (*models.Workflow, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	var workflow models.Workflow
	if err := s.db.Preload("Tasks").First(&workflow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkflowNotFound
		}
		return nil, errors.Wrap(err, "loading workflow")
	}
	return &workflow, nil
}
