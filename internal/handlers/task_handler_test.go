package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/realtime"
	"github.com/Luapxanna/ops-pilot/internal/tasks"
	"github.com/Luapxanna/ops-pilot/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Project{Name: "P", Description: "d", OrganizationID: 1}).Error)

	h := NewTaskHandler(tasks.NewService(db), realtime.NewHub())
	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.PATCH("/tasks/:id/assign", h.Assign)
	r.POST("/tasks/assign", h.AssignOrCreate)
	r.PATCH("/tasks/status", h.UpdateStatus)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func managerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("u-pm", models.RoleProjectManager, 1)
	require.NoError(t, err)
	return token
}

func TestAssignEndpoint_ForcesInProgress(t *testing.T) {
	r, db := newTaskRouter(t)
	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)

	w := doJSON(t, r, http.MethodPatch, "/tasks/1/assign", managerToken(t), gin.H{"assigneeId": "u-emp"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"IN_PROGRESS"`)
}

func TestAssignEndpoint_ForbiddenForEmployee(t *testing.T) {
	r, db := newTaskRouter(t)
	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)

	token, err := auth.GenerateToken("u-emp", models.RoleEmployee, 1)
	require.NoError(t, err)
	w := doJSON(t, r, http.MethodPatch, "/tasks/1/assign", token, gin.H{"assigneeId": "u-emp"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateVariant_MissingDependencyListsIDs(t *testing.T) {
	r, _ := newTaskRouter(t)

	w := doJSON(t, r, http.MethodPost, "/tasks/assign", managerToken(t), gin.H{
		"name":         "C",
		"description":  "d",
		"projectId":    1,
		"dependencies": []uint{999},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "999")
}

func TestUpdateStatusEndpoint_DependencyConflict(t *testing.T) {
	r, db := newTaskRouter(t)
	dep := models.Task{Name: "B", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&dep).Error)
	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1, Dependencies: []*models.Task{&dep}}
	require.NoError(t, db.Create(&task).Error)

	w := doJSON(t, r, http.MethodPatch, "/tasks/status", managerToken(t), gin.H{"id": task.ID, "status": "IN_PROGRESS"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "are not COMPLETED")
}

func TestUpdateStatusEndpoint_UnknownStatusRejected(t *testing.T) {
	r, db := newTaskRouter(t)
	task := models.Task{Name: "A", Status: models.StatusNotStarted, ProjectID: 1}
	require.NoError(t, db.Create(&task).Error)

	w := doJSON(t, r, http.MethodPatch, "/tasks/status", managerToken(t), gin.H{"id": task.ID, "status": "DONE"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
