package audit

import (
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var admin = auth.Identity{ID: "u-admin", Role: models.RoleOrgAdmin, OrganizationID: 1}

func lastEntry(t *testing.T, db *gorm.DB) models.AuditLog {
	t.Helper()
	var entry models.AuditLog
	require.NoError(t, db.Order("id desc").First(&entry).Error)
	return entry
}

func TestRollback_NotFound(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	require.ErrorIs(t, Rollback(db, 42, admin), ErrAuditLogNotFound)
}

func TestRollback_CreateIsUnsupported(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)
	require.NoError(t, Record(db, models.TargetTask, task.ID, models.ActionCreate, nil, task, admin.ID))

	err = Rollback(db, lastEntry(t, db).ID, admin)
	require.ErrorIs(t, err, ErrRollbackUnsupported)
}

func TestRollback_UpdateRestoresPreviousState(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)

	previous := task
	task.Status = models.StatusInProgress
	require.NoError(t, db.Save(&task).Error)
	require.NoError(t, Record(db, models.TargetTask, task.ID, models.ActionUpdate, previous, task, admin.ID))
	updateEntry := lastEntry(t, db)

	require.NoError(t, Rollback(db, updateEntry.ID, admin))

	var restored models.Task
	require.NoError(t, db.First(&restored, task.ID).Error)
	require.Equal(t, models.StatusNotStarted, restored.Status)

	// The rollback itself landed in the ledger as a fresh UPDATE entry.
	entry := lastEntry(t, db)
	require.NotEqual(t, updateEntry.ID, entry.ID)
	require.Equal(t, models.ActionUpdate, entry.Action)
	require.Equal(t, task.ID, entry.EntityID)
	require.Equal(t, admin.ID, entry.UserID)
}

func TestRollback_DeleteRecreatesRecord(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	project := models.Project{Name: "P", Description: "d", OrganizationID: 1, Status: "Active"}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, Record(db, models.TargetProject, project.ID, models.ActionDelete, project, nil, admin.ID))
	require.NoError(t, db.Delete(&models.Project{}, project.ID).Error)

	require.NoError(t, Rollback(db, lastEntry(t, db).ID, admin))

	var restored models.Project
	require.NoError(t, db.First(&restored, project.ID).Error)
	require.Equal(t, "P", restored.Name)
	require.Equal(t, "Active", restored.Status)
}

func TestRollback_UnknownTargetRejected(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	prev := `{"id":1}`
	entry := models.AuditLog{Target: "Sprocket", EntityID: 1, Action: models.ActionUpdate, PreviousValue: &prev, UserID: admin.ID}
	require.NoError(t, db.Create(&entry).Error)

	err = Rollback(db, entry.ID, admin)
	var targetErr *UnknownTargetError
	require.ErrorAs(t, err, &targetErr)
	require.Equal(t, "Sprocket", targetErr.Target)
}
