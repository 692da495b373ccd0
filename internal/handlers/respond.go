package handlers

import (
	"net/http"

	"github.com/Luapxanna/ops-pilot/internal/audit"
	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/projects"
	"github.com/Luapxanna/ops-pilot/internal/report"
	"github.com/Luapxanna/ops-pilot/internal/tasks"
	"github.com/Luapxanna/ops-pilot/internal/timelogs"
	"github.com/Luapxanna/ops-pilot/internal/workflows"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// respondError maps domain errors onto the HTTP taxonomy: authorization
// failures, validation failures, missing entities, unmet preconditions and
// unsupported operations each get a distinct status.
func respondError(c *gin.Context, err error) {
	var authzErr *auth.AuthorizationError
	var depErr *tasks.DependencyNotCompletedError
	var missingErr *tasks.MissingDependencyError
	var statusErr *tasks.InvalidStatusError
	var targetErr *audit.UnknownTargetError

	switch {
	case errors.As(err, &authzErr):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, tasks.ErrTaskNotFound),
		errors.Is(err, audit.ErrAuditLogNotFound),
		errors.Is(err, projects.ErrProjectNotFound),
		errors.Is(err, workflows.ErrWorkflowNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.As(err, &missingErr):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error(), "missing": missingErr.Missing})
	case errors.As(err, &depErr):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error(), "blocking": depErr.Blocking})
	case errors.Is(err, audit.ErrRollbackUnsupported), errors.As(err, &targetErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, tasks.ErrMissingFields),
		errors.Is(err, timelogs.ErrInvalidTimeLog),
		errors.Is(err, projects.ErrMissingFields),
		errors.Is(err, report.ErrInvalidFormat),
		errors.As(err, &statusErr):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}
