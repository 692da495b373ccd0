package audit

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Record writes one audit entry for a mutation of the given target entity.
// It must be called on the same transaction handle as the mutation itself,
// so an aborted operation leaves no audit row behind. previous is nil for
// CREATE entries, next is nil for DELETE entries.
func Record(tx *gorm.DB, target string, entityID uint, action models.AuditAction, previous, next any, actorID string) error {
	prevJSON, err := snapshot(previous)
	if err != nil {
		return errors.Wrap(err, "encoding previous snapshot")
	}
	nextJSON, err := snapshot(next)
	if err != nil {
		return errors.Wrap(err, "encoding new snapshot")
	}

	summary, err := changeSummary(prevJSON, nextJSON)
	if err != nil {
		return errors.Wrap(err, "computing change summary")
	}

	entry := models.AuditLog{
		Target:        target,
		EntityID:      entityID,
		Action:        action,
		PreviousValue: prevJSON,
		NewValue:      nextJSON,
		Data:          summary,
		UserID:        actorID,
		Timestamp:     time.Now(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "writing audit entry")
	}
	return nil
}

func snapshot(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

// fieldChange is one changed top-level field in a change summary.
type fieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// changeSummary itemizes top-level fields whose values differ between the
// two snapshots. Nested values are compared structurally as a whole; deep
// changes inside an otherwise-equal top-level field are not broken down
// further. Empty when either snapshot is absent.
func changeSummary(prevJSON, nextJSON *string) (string, error) {
	if prevJSON == nil || nextJSON == nil {
		return "", nil
	}

	var prev, next map[string]any
	if err := json.Unmarshal([]byte(*prevJSON), &prev); err != nil {
		return "", err
	}
	if err := json.Unmarshal([]byte(*nextJSON), &next); err != nil {
		return "", err
	}

	changes := make(map[string]fieldChange)
	for key, newVal := range next {
		if oldVal, ok := prev[key]; !ok || !reflect.DeepEqual(oldVal, newVal) {
			changes[key] = fieldChange{Old: prev[key], New: newVal}
		}
	}
	if len(changes) == 0 {
		return "", nil
	}

	raw, err := json.Marshal(changes)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// List returns audit entries ordered newest-first.
func List(db *gorm.DB) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	if err := db.Order("timestamp desc, id desc").Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "fetching audit logs")
	}
	return logs, nil
}
