package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/realtime"
	"github.com/Luapxanna/ops-pilot/internal/tasks"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes the task state machine over HTTP.
type TaskHandler struct {
	svc *tasks.Service
	hub *realtime.Hub
}

// NewTaskHandler builds a TaskHandler.
func NewTaskHandler(svc *tasks.Service, hub *realtime.Hub) *TaskHandler {
	return &TaskHandler{svc: svc, hub: hub}
}

// AssignRequest covers both shapes of POST /tasks/assign: assigning an
// existing task (id + assigneeId) and the creation variant (name et al.).
type AssignRequest struct {
	ID           uint       `json:"id"`
	AssigneeID   string     `json:"assigneeId"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ProjectID    uint       `json:"projectId"`
	WorkflowID   *uint      `json:"workflowId"`
	DueDate      *time.Time `json:"dueDate"`
	Dependencies []uint     `json:"dependencies"`
}

// UpdateStatusRequest is the payload of PATCH /tasks/status.
type UpdateStatusRequest struct {
	ID     uint          `json:"id" binding:"required"`
	Status models.Status `json:"status" binding:"required"`
}

// Assign handles PATCH /tasks/:id/assign: force a task into IN_PROGRESS
// under a new assignee, regardless of its dependencies.
func (h *TaskHandler) Assign(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Task ID must be numeric"})
		return
	}

	var req struct {
		AssigneeID string `json:"assigneeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	task, err := h.svc.AssignTask(uint(taskID), req.AssigneeID, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.NotifyTask(req.AssigneeID, realtime.TaskEvent{Type: "task_assigned", TaskID: task.ID, Status: string(task.Status)})
	respondOK(c, task)
}

// AssignOrCreate handles POST /tasks/assign. With an id it behaves like
// Assign; with a name it is the creation variant and builds a task with
// dependency links.
func (h *TaskHandler) AssignOrCreate(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.ID != 0 {
		task, err := h.svc.AssignTask(req.ID, req.AssigneeID, identity)
		if err != nil {
			respondError(c, err)
			return
		}
		h.hub.NotifyTask(req.AssigneeID, realtime.TaskEvent{Type: "task_assigned", TaskID: task.ID, Status: string(task.Status)})
		respondOK(c, task)
		return
	}

	input := tasks.CreateTaskInput{
		Name:          req.Name,
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		WorkflowID:    req.WorkflowID,
		DueDate:       req.DueDate,
		DependencyIDs: req.Dependencies,
	}
	if req.AssigneeID != "" {
		input.AssigneeID = &req.AssigneeID
	}

	task, err := h.svc.CreateTaskWithDependencies(input, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, task)
}

// UpdateStatus handles PATCH /tasks/status: the dependency-gated
// transition path.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	task, err := h.svc.UpdateTaskStatus(req.ID, req.Status, identity)
	if err != nil {
		respondError(c, err)
		return
	}

	if task.AssigneeID != nil {
		h.hub.NotifyTask(*task.AssigneeID, realtime.TaskEvent{Type: "task_status_changed", TaskID: task.ID, Status: string(task.Status)})
	}
	respondOK(c, task)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Task ID must be numeric"})
		return
	}
	task, err := h.svc.GetTask(uint(taskID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, task)
}
