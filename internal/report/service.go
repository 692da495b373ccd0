package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrInvalidFormat rejects anything other than csv or json.
var ErrInvalidFormat = errors.New(`invalid format, supported formats are "csv" and "json"`)

// Filter narrows which tasks an export covers.
type Filter struct {
	Status    models.Status
	ProjectID uint
}

// Export is a rendered report ready to be served.
type Export struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Service renders task reports as CSV or JSON.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type reportRow struct {
	ID         uint          `json:"id"`
	Name       string        `json:"name"`
	Status     models.Status `json:"status"`
	DueDate    string        `json:"dueDate"`
	AssigneeID string        `json:"assigneeId"`
}

// ExportTasks fetches tasks matching the filter and renders them in the
// requested format.
func (s *Service) ExportTasks(format string, filter Filter) (*Export, error) {
	if format != "csv" && format != "json" {
		return nil, ErrInvalidFormat
	}

	query := s.db.Model(&models.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProjectID != 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	var tasks []models.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, errors.Wrap(err, "fetching tasks")
	}

	rows := make([]reportRow, 0, len(tasks))
	for _, t := range tasks {
		row := reportRow{ID: t.ID, Name: t.Name, Status: t.Status}
		if t.DueDate != nil {
			row.DueDate = t.DueDate.Format("2006-01-02")
		}
		if t.AssigneeID != nil {
			row.AssigneeID = *t.AssigneeID
		}
		rows = append(rows, row)
	}

	if format == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding report")
		}
		return &Export{Data: data, ContentType: "application/json", FileName: "report.json"}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "name", "status", "dueDate", "assigneeId"}); err != nil {
		return nil, errors.Wrap(err, "writing report header")
	}
	for _, row := range rows {
		record := []string{strconv.FormatUint(uint64(row.ID), 10), row.Name, string(row.Status), row.DueDate, row.AssigneeID}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "writing report row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flushing report")
	}
	return &Export{Data: buf.Bytes(), ContentType: "text/csv", FileName: "report.csv"}, nil
}
