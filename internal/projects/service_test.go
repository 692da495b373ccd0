package projects

import (
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	admin   = auth.Identity{ID: "u-admin", Role: models.RoleOrgAdmin, OrganizationID: 1}
	manager = auth.Identity{ID: "u-pm", Role: models.RoleProjectManager, OrganizationID: 1}
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	return NewService(db), db
}

func TestCreate_DefaultsAndAudit(t *testing.T) {
	svc, db := newTestService(t)

	project, err := svc.Create(CreateInput{Name: "Apollo", Description: "moonshot"}, manager)
	require.NoError(t, err)
	require.Equal(t, "Pending", project.Status)
	require.EqualValues(t, 1, project.OrganizationID)
	require.False(t, project.StartDate.IsZero())

	var entry models.AuditLog
	require.NoError(t, db.Where("target = ?", models.TargetProject).First(&entry).Error)
	require.Equal(t, models.ActionCreate, entry.Action)
	require.Nil(t, entry.PreviousValue)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(CreateInput{Name: "Apollo"}, manager)
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestDelete_RecordsSnapshotForRollback(t *testing.T) {
	svc, db := newTestService(t)

	project, err := svc.Create(CreateInput{Name: "Apollo", Description: "moonshot"}, manager)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(project.ID, admin))

	_, err = svc.Get(project.ID, admin)
	require.ErrorIs(t, err, ErrProjectNotFound)

	var entry models.AuditLog
	require.NoError(t, db.Where("target = ? AND action = ?", models.TargetProject, models.ActionDelete).First(&entry).Error)
	require.Equal(t, project.ID, entry.EntityID)
	require.NotNil(t, entry.PreviousValue)
	require.Nil(t, entry.NewValue)
	require.Contains(t, *entry.PreviousValue, "Apollo")
}

func TestDelete_RequiresOrgAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	project, err := svc.Create(CreateInput{Name: "Apollo", Description: "moonshot"}, manager)
	require.NoError(t, err)

	err = svc.Delete(project.ID, manager)
	var authzErr *auth.AuthorizationError
	require.ErrorAs(t, err, &authzErr)
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	require.ErrorIs(t, svc.Delete(42, admin), ErrProjectNotFound)
}
