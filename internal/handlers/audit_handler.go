package handlers

import (
	"net/http"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditHandler exposes the audit ledger and the rollback engine.
type AuditHandler struct {
	db *gorm.DB
}

// NewAuditHandler builds an AuditHandler.
func NewAuditHandler(db *gorm.DB) *AuditHandler {
	return &AuditHandler{db: db}
}

// Logs handles GET /audit/logs, newest first.
func (h *AuditHandler) Logs(c *gin.Context) {
	logs, err := audit.List(h.db)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, logs)
}

// RollbackRequest is the payload of POST /audit/rollback.
type RollbackRequest struct {
	AuditLogID uint `json:"auditLogId" binding:"required"`
}

// Rollback handles POST /audit/rollback.
func (h *AuditHandler) Rollback(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Identity not found in token"})
		return
	}

	var req RollbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := audit.Rollback(h.db, req.AuditLogID, identity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rollback completed successfully"})
}
