package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/projects"

	"github.com/gin-gonic/gin"
)

// ProjectHandler exposes project CRUD.
type ProjectHandler struct {
	svc *projects.Service
}

// NewProjectHandler builds a ProjectHandler.
func NewProjectHandler(svc *projects.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProjectRequest is the payload of POST /projects.
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      string     `json:"status"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	project, err := h.svc.Create(projects.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	}, identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, project)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Project ID must be numeric"})
		return
	}
	project, err := h.svc.Get(uint(id), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, project)
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}
	projectList, err := h.svc.List(identity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, projectList)
}

// Delete handles DELETE /projects/:id (ORGADMIN only); the deletion is
// audited and can be rolled back.
func (h *ProjectHandler) Delete(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Project ID must be numeric"})
		return
	}
	if err := h.svc.Delete(uint(id), identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Project deleted"})
}
