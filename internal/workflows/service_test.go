package workflows

import (
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/tasks"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var manager = auth.Identity{ID: "u-pm", Role: models.RoleProjectManager, OrganizationID: 1}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Project{Name: "P", Description: "d", OrganizationID: 1}).Error)
	return NewService(db), db
}

func TestCreate_TasksDefaultToPending(t *testing.T) {
	svc, db := newTestService(t)

	workflow, err := svc.Create("Release", "ship v2", 1, []TaskInput{
		{Name: "Cut branch"},
		{Name: "Tag", Status: models.StatusNotStarted},
	}, manager)
	require.NoError(t, err)
	require.Len(t, workflow.Tasks, 2)
	require.Equal(t, models.StatusPending, workflow.Tasks[0].Status)
	require.Equal(t, models.StatusNotStarted, workflow.Tasks[1].Status)

	// The workflow creation landed in the audit ledger.
	var entry models.AuditLog
	require.NoError(t, db.Where("target = ?", models.TargetWorkflow).First(&entry).Error)
	require.Equal(t, models.ActionCreate, entry.Action)
	require.Equal(t, workflow.ID, entry.EntityID)
}

func TestCreate_MissingDependencyRollsBackEverything(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Create("Release", "ship v2", 1, []TaskInput{
		{Name: "Cut branch"},
		{Name: "Tag", DependencyIDs: []uint{999}},
	}, manager)
	var missing *tasks.MissingDependencyError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []uint{999}, missing.Missing)

	var workflowCount, taskCount int64
	require.NoError(t, db.Model(&models.Workflow{}).Count(&workflowCount).Error)
	require.NoError(t, db.Model(&models.Task{}).Count(&taskCount).Error)
	require.Zero(t, workflowCount)
	require.Zero(t, taskCount)
}

func TestCreate_RequiresManagerRole(t *testing.T) {
	svc, _ := newTestService(t)

	employee := auth.Identity{ID: "u-emp", Role: models.RoleEmployee, OrganizationID: 1}
	_, err := svc.Create("Release", "ship v2", 1, nil, employee)
	var authzErr *auth.AuthorizationError
	require.ErrorAs(t, err, &authzErr)
}

func TestList_ScopedToOrganization(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create("Ours", "d", 1, nil, manager)
	require.NoError(t, err)
	otherOrg := auth.Identity{ID: "u-other", Role: models.RoleProjectManager, OrganizationID: 2}
	_, err = svc.Create("Theirs", "d", 1, nil, otherOrg)
	require.NoError(t, err)

	workflows, err := svc.List(manager)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	require.Equal(t, "Ours", workflows[0].Name)
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(42, manager)
	require.ErrorIs(t, err, ErrWorkflowNotFound)
}
