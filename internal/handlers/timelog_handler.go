package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/timelogs"

	"github.com/gin-gonic/gin"
)

// TimeLogHandler exposes time logging and weekly summaries.
type TimeLogHandler struct {
	svc *timelogs.Service
}

// NewTimeLogHandler builds a TimeLogHandler.
func NewTimeLogHandler(svc *timelogs.Service) *TimeLogHandler {
	return &TimeLogHandler{svc: svc}
}

// LogTimeRequest is the payload of POST /timelogs.
type LogTimeRequest struct {
	TaskID uint      `json:"taskId" binding:"required"`
	UserID string    `json:"userId" binding:"required"`
	Date   time.Time `json:"date" binding:"required"`
	Hours  float64   `json:"hours"`
}

// Log handles POST /timelogs.
func (h *TimeLogHandler) Log(c *gin.Context) {
	var req LogTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	log, err := h.svc.LogTime(req.TaskID, req.UserID, req.Date, req.Hours)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, log)
}

// ByTask handles GET /timelogs/task/:id.
func (h *TimeLogHandler) ByTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Task ID must be numeric"})
		return
	}
	logs, err := h.svc.ByTask(uint(taskID))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, logs)
}

// Weekly handles GET /timelogs/weekly/:userId.
func (h *TimeLogHandler) Weekly(c *gin.Context) {
	summary, err := h.svc.WeeklyHours(c.Param("userId"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}
