package audit

import (
	"encoding/json"
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestRecord_UpdateDiffsTopLevelFields(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	prev := map[string]any{"id": 1, "name": "A", "status": "NOT_STARTED"}
	next := map[string]any{"id": 1, "name": "A", "status": "IN_PROGRESS"}
	require.NoError(t, Record(db, models.TargetTask, 1, models.ActionUpdate, prev, next, "u-1"))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, models.ActionUpdate, entry.Action)
	require.NotNil(t, entry.PreviousValue)
	require.NotNil(t, entry.NewValue)

	var changes map[string]struct {
		Old any `json:"old"`
		New any `json:"new"`
	}
	require.NoError(t, json.Unmarshal([]byte(entry.Data), &changes))
	require.Len(t, changes, 1)
	require.Equal(t, "NOT_STARTED", changes["status"].Old)
	require.Equal(t, "IN_PROGRESS", changes["status"].New)
}

func TestRecord_CreateHasNoPreviousValue(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	next := map[string]any{"id": 7, "name": "fresh"}
	require.NoError(t, Record(db, models.TargetTask, 7, models.ActionCreate, nil, next, "u-1"))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.Nil(t, entry.PreviousValue)
	require.NotNil(t, entry.NewValue)
	require.Empty(t, entry.Data)
}

func TestRecord_DeleteHasNoNewValue(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	prev := map[string]any{"id": 7, "name": "gone"}
	require.NoError(t, Record(db, models.TargetProject, 7, models.ActionDelete, prev, nil, "u-1"))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	require.NotNil(t, entry.PreviousValue)
	require.Nil(t, entry.NewValue)
	require.Empty(t, entry.Data)
}

func TestList_NewestFirst(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, Record(db, models.TargetTask, uint(i), models.ActionCreate, nil, map[string]any{"id": i}, "u-1"))
	}

	logs, err := List(db)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	require.EqualValues(t, 3, logs[0].EntityID)
	require.EqualValues(t, 1, logs[2].EntityID)
}
