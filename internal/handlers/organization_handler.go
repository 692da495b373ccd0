package handlers

import (
	"net/http"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/middleware"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrganizationHandler exposes tenant management.
type OrganizationHandler struct {
	db *gorm.DB
}

// NewOrganizationHandler builds an OrganizationHandler.
func NewOrganizationHandler(db *gorm.DB) *OrganizationHandler {
	return &OrganizationHandler{db: db}
}

// CreateOrganizationRequest is the payload of POST /organizations.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles POST /organizations. Registration needs an organization
// to point at, so this endpoint is public.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	org := models.Organization{Name: req.Name, Description: req.Description}
	actorID := "system"
	if identity, ok := middleware.IdentityFrom(c); ok {
		actorID = identity.ID
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		return audit.Record(tx, models.TargetOrganization, org.ID, models.ActionCreate, nil, org, actorID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create organization"})
		return
	}
	respondCreated(c, org)
}

// List handles GET /organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	var orgs []models.Organization
	if err := h.db.Find(&orgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch organizations"})
		return
	}
	respondOK(c, orgs)
}
