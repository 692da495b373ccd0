package etl

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/logging"
	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ImportResult summarizes one CSV ingestion run.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Service ingests externally produced time-log CSVs.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ImportTimeLogs reads CSV rows of the form projectId,userId,date,hours
// (with a header) and stores a time log against the first task of each
// row's project. Rows without a matching task or with malformed values are
// skipped and counted, not fatal.
func (s *Service) ImportTimeLogs(r io.Reader, source string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"projectId", "userId", "date", "hours"} {
		if _, ok := col[required]; !ok {
			return nil, errors.Errorf("CSV header is missing column %q", required)
		}
	}

	result := &ImportResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading CSV row")
		}

		projectID, err := strconv.ParseUint(record[col["projectId"]], 10, 64)
		if err != nil {
			logging.Logger.Warnf("ETL: skipping row with bad projectId %q", record[col["projectId"]])
			result.Skipped++
			continue
		}
		date, err := time.Parse("2006-01-02", record[col["date"]])
		if err != nil {
			logging.Logger.Warnf("ETL: skipping row with bad date %q", record[col["date"]])
			result.Skipped++
			continue
		}
		hours, err := strconv.ParseFloat(record[col["hours"]], 64)
		if err != nil || hours < 0 {
			logging.Logger.Warnf("ETL: skipping row with bad hours %q", record[col["hours"]])
			result.Skipped++
			continue
		}

		var task models.Task
		if err := s.db.Where("project_id = ?", projectID).Order("id").First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logging.Logger.Warnf("ETL: no task for project %d, skipping row", projectID)
				result.Skipped++
				continue
			}
			return nil, errors.Wrap(err, "looking up task")
		}

		log := models.TimeLog{
			TaskID: task.ID,
			UserID: record[col["userId"]],
			Date:   date,
			Hours:  hours,
			Source: source,
		}
		if err := s.db.Create(&log).Error; err != nil {
			return nil, errors.Wrap(err, "inserting time log")
		}
		result.Imported++
	}

	logging.Logger.Infof("ETL: imported %d time logs, skipped %d rows", result.Imported, result.Skipped)
	return result, nil
}
