package handlers

import (
	"net/http"
	"strconv"

	"github.com/Luapxanna/ops-pilot/internal/kpi"
	"github.com/Luapxanna/ops-pilot/internal/leaderboard"
	"github.com/Luapxanna/ops-pilot/internal/models"
	"github.com/Luapxanna/ops-pilot/internal/report"

	"github.com/gin-gonic/gin"
)

// KPIHandler exposes the memoized read-side aggregations.
type KPIHandler struct {
	svc *kpi.Service
}

// NewKPIHandler builds a KPIHandler.
func NewKPIHandler(svc *kpi.Service) *KPIHandler {
	return &KPIHandler{svc: svc}
}

// Completion handles GET /kpi/completion.
func (h *KPIHandler) Completion(c *gin.Context) {
	pct, err := h.svc.TaskCompletionPercentage()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"taskCompletionPercentage": pct})
}

// ProjectDurations handles GET /kpi/project-durations.
func (h *KPIHandler) ProjectDurations(c *gin.Context) {
	metrics, err := h.svc.ProjectDurationMetrics()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, metrics)
}

// Efficiency handles GET /kpi/efficiency.
func (h *KPIHandler) Efficiency(c *gin.Context) {
	metrics, err := h.svc.TopEmployeesByEfficiency()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, metrics)
}

// LeaderboardHandler exposes the efficiency ranking.
type LeaderboardHandler struct {
	svc *leaderboard.Service
}

// NewLeaderboardHandler builds a LeaderboardHandler.
func NewLeaderboardHandler(svc *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// Fetch handles GET /leaderboard.
func (h *LeaderboardHandler) Fetch(c *gin.Context) {
	entries, err := h.svc.Fetch()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entries)
}

// ReportHandler exposes task report exports.
type ReportHandler struct {
	svc *report.Service
}

// NewReportHandler builds a ReportHandler.
func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Export handles GET /reports/export?format=csv|json&status=&projectId=.
func (h *ReportHandler) Export(c *gin.Context) {
	filter := report.Filter{Status: models.Status(c.Query("status"))}
	if projectID, err := strconv.ParseUint(c.Query("projectId"), 10, 64); err == nil {
		filter.ProjectID = uint(projectID)
	}

	export, err := h.svc.ExportTasks(c.DefaultQuery("format", "json"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
