package handlers

import (
	"net/http"

	"github.com/Luapxanna/ops-pilot/internal/etl"

	"github.com/gin-gonic/gin"
)

// ETLHandler exposes CSV time-log ingestion.
type ETLHandler struct {
	svc *etl.Service
}

// NewETLHandler builds an ETLHandler.
func NewETLHandler(svc *etl.Service) *ETLHandler {
	return &ETLHandler{svc: svc}
}

// Import handles POST /etl/import. The CSV comes either as a multipart
// "file" field or as the raw request body.
func (h *ETLHandler) Import(c *gin.Context) {
	source := c.DefaultQuery("source", "csv-import")

	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to open uploaded file"})
			return
		}
		defer f.Close()
		result, err := h.svc.ImportTimeLogs(f, source)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, result)
		return
	}

	result, err := h.svc.ImportTimeLogs(c.Request.Body, source)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}
