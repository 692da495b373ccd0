package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/workflows"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler exposes workflow creation and reads.
type WorkflowHandler struct {
	svc *workflows.Service
}

// NewWorkflowHandler builds a WorkflowHandler.
func NewWorkflowHandler(svc *workflows.Service) *WorkflowHandler {
	return &WorkflowHandler{svc: svc}
}

// WorkflowTaskRequest is one task inside a workflow creation payload.
type WorkflowTaskRequest struct {
	Name          string        `json:"name" binding:"required"`
	Description   string        `json:"description"`
	AssigneeID    string        `json:"assigneeId"`
	Status        models.Status `json:"status"`
	DueDate       *time.Time    `json:"dueDate"`
	DependencyIDs []uint        `json:"dependencyIds"`
}

// CreateWorkflowRequest is the payload of POST /workflows.
type CreateWorkflowRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	ProjectID   uint                  `json:"projectId" binding:"required"`
	Tasks       []WorkflowTaskRequest `json:"tasks"`
}

// Create handles POST /workflows.
func (h *WorkflowHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	var req CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	inputs := make([]workflows.TaskInput, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		input := workflows.TaskInput{
			Name:          t.Name,
			Description:   t.Description,
			Status:        t.Status,
			DueDate:       t.DueDate,
			DependencyIDs: t.DependencyIDs,
		}
		if t.AssigneeID != "" {
			assignee := t.AssigneeID
			input.AssigneeID = &assignee
		}
		inputs = append(inputs, input)
	}

	workflow, err := h.svc.Create(req.Name, req.Description, req.ProjectID, inputs, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, workflow)
}

// List handles GET /workflows, scoped to the actor's organization.
func (h *WorkflowHandler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}
	workflowList, err := h.svc.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, workflowList)
}

// Get handles GET /workflows/:id.
func (h *WorkflowHandler) Get(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Workflow ID must be numeric"})
		return
	}
	workflow, err := h.svc.Get(uint(id), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, workflow)
}
