package projects

import (
	"time"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var managerRoles = []models.Role{models.RoleProjectManager, models.RoleOrgAdmin}

// ErrProjectNotFound is returned when the referenced project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrMissingFields rejects a creation request without name or organization.
var ErrMissingFields = errors.New("missing required fields: name, description or organizationId")

// Service owns project CRUD; creation and deletion are audited.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateInput carries the fields for Create.
type CreateInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
}

// Create builds a project in the actor's organization. Dates default to
// now and status to Pending, matching how projects are bootstrapped before
// any planning data exists.
func (s *Service) Create(input CreateInput, actor auth.Identity) (*models.Project, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Description == "" {
		return nil, ErrMissingFields
	}

	now := time.Now()
	project := models.Project{
		Name:           input.Name,
		Description:    input.Description,
		OrganizationID: actor.OrganizationID,
		StartDate:      now,
		EndDate:        now,
		Status:         "Pending",
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}
	if input.Status != "" {
		project.Status = input.Status
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return errors.Wrap(err, "creating project")
		}
		return audit.Record(tx, models.TargetProject, project.ID, models.ActionCreate, nil, project, actor.ID)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Get loads one project.
func (s *Service) Get(id uint, actor auth.Identity) (*models.Project, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, errors.Wrap(err, "loading project")
	}
	return &project, nil
}

// List returns all projects visible to the actor.
func (s *Service) List(actor auth.Identity) ([]models.Project, error) {
	if err := auth.Authorize(actor, managerRoles...); err != nil {
		return nil, err
	}
	var projects []models.Project
	if err := s.db.Find(&projects).Error; err != nil {
		return nil, errors.Wrap(err, "listing projects")
	}
	return projects, nil
}

// Delete removes a project and records a DELETE audit entry carrying the
// full prior snapshot, which is what the rollback engine re-creates from.
func (s *Service) Delete(id uint, actor auth.Identity) error {
	if err := auth.Authorize(actor, models.RoleOrgAdmin); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return errors.Wrap(err, "loading project")
		}
		if err := tx.Delete(&project).Error; err != nil {
			return errors.Wrap(err, "deleting project")
		}
		return audit.Record(tx, models.TargetProject, project.ID, models.ActionDelete, project, nil, actor.ID)
	})
}
