package kpi

import (
	"testing"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTasks(t *testing.T, db *gorm.DB, statuses ...models.Status) {
	t.Helper()
	for _, status := range statuses {
		task := models.Task{Name: "T", Status: status, ProjectID: 1}
		require.NoError(t, db.Create(&task).Error)
	}
}

func TestTaskCompletionPercentage(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewService(db)

	seedTasks(t, db, models.StatusCompleted, models.StatusCompleted, models.StatusInProgress, models.StatusNotStarted)

	pct, err := svc.TaskCompletionPercentage()
	require.NoError(t, err)
	require.Equal(t, 50.0, pct)
}

func TestTaskCompletionPercentage_EmptyTableIsZero(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewService(db)

	pct, err := svc.TaskCompletionPercentage()
	require.NoError(t, err)
	require.Zero(t, pct)
}

func TestTaskCompletionPercentage_Memoized(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewService(db)

	seedTasks(t, db, models.StatusCompleted)
	pct, err := svc.TaskCompletionPercentage()
	require.NoError(t, err)
	require.Equal(t, 100.0, pct)

	// New rows are invisible until the memo is refreshed.
	seedTasks(t, db, models.StatusNotStarted)
	pct, err = svc.TaskCompletionPercentage()
	require.NoError(t, err)
	require.Equal(t, 100.0, pct)

	require.NoError(t, svc.Refresh())
	pct, err = svc.TaskCompletionPercentage()
	require.NoError(t, err)
	require.Equal(t, 50.0, pct)
}

func TestProjectDurationMetrics(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewService(db)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Project{Name: "P1", OrganizationID: 1, StartDate: start, EndDate: start.AddDate(0, 0, 10)}).Error)

	metrics, err := svc.ProjectDurationMetrics()
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	require.NotNil(t, metrics[0].Duration)
	require.Equal(t, 10.0, *metrics[0].Duration)
}

func TestTopEmployeesByEfficiency(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	svc := NewService(db)

	started := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fast := "u-fast"
	slow := "u-slow"
	for _, row := range []struct {
		assignee string
		days     int
	}{{fast, 1}, {fast, 3}, {slow, 10}} {
		done := started.AddDate(0, 0, row.days)
		task := models.Task{
			Name:         "T",
			Status:       models.StatusCompleted,
			ProjectID:    1,
			AssigneeID:   &row.assignee,
			InProgressAt: &started,
			CompletedAt:  &done,
		}
		require.NoError(t, db.Create(&task).Error)
	}

	result, err := svc.TopEmployeesByEfficiency()
	require.NoError(t, err)
	require.Len(t, result, 2)

	byID := make(map[string]EmployeeEfficiency, len(result))
	for _, e := range result {
		byID[e.AssigneeID] = e
	}
	require.Equal(t, 2, byID[fast].TotalTasks)
	require.Equal(t, 2.0, byID[fast].AvgCompletionTime)
	require.Equal(t, 10.0, byID[slow].AvgCompletionTime)
}
