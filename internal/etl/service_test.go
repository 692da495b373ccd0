package etl

import (
	"strings"
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestImportTimeLogs(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	task := models.Task{Name: "T", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)

	csvData := strings.Join([]string{
		"projectId,userId,date,hours",
		"1,u-1,2025-06-02,6.5",
		"1,u-2,2025-06-03,4",
		"2,u-3,2025-06-03,8",      // project 2 has no tasks
		"1,u-4,not-a-date,3",      // malformed date
		"1,u-5,2025-06-04,banana", // malformed hours
	}, "\n")

	result, err := NewService(db).ImportTimeLogs(strings.NewReader(csvData), "external")
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, 3, result.Skipped)

	var logs []models.TimeLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	require.Equal(t, task.ID, logs[0].TaskID)
	require.Equal(t, "u-1", logs[0].UserID)
	require.Equal(t, 6.5, logs[0].Hours)
	require.Equal(t, "external", logs[0].Source)
}

func TestImportTimeLogs_MissingColumn(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	_, err = NewService(db).ImportTimeLogs(strings.NewReader("projectId,userId,hours\n1,u-1,4"), "external")
	require.Error(t, err)
	require.Contains(t, err.Error(), "date")
}
