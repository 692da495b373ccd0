package audit

import (
	"encoding/json"
	"fmt"

	"github.com/Luapxanna/ops-pilot/internal/auth"
	"github.com/Luapxanna/ops-pilot/internal/models"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAuditLogNotFound is returned when the referenced audit entry does not exist.
var ErrAuditLogNotFound = pkgerrors.New("audit log entry not found")

// ErrRollbackUnsupported is returned for CREATE entries, which have no
// defined inverse.
var ErrRollbackUnsupported = pkgerrors.New("rollback is not supported for this action")

// UnknownTargetError is returned when an audit entry carries a target tag
// the rollback engine has no typed mapping for.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown audit target %q", e.Target)
}

// newEntity maps a target tag to a fresh typed record. Unknown tags are
// rejected here rather than probed dynamically.
func newEntity(target string) (any, error) {
	switch target {
	case models.TargetTask:
		return &models.Task{}, nil
	case models.TargetProject:
		return &models.Project{}, nil
	case models.TargetWorkflow:
		return &models.Workflow{}, nil
	case models.TargetOrganization:
		return &models.Organization{}, nil
	default:
		return nil, &UnknownTargetError{Target: target}
	}
}

// Rollback restores the state captured by an audit entry.
//
// DELETE entries are undone by re-creating the record from the previous
// snapshot; UPDATE entries by restoring the row keyed by the entry's
// EntityID. CREATE entries have no inverse. The rollback is a mutation in
// its own right and gets its own audit entry.
func Rollback(db *gorm.DB, auditLogID uint, actor auth.Identity) error {
	var entry models.AuditLog
	if err := db.First(&entry, auditLogID).Error; err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuditLogNotFound
		}
		return pkgerrors.Wrap(err, "loading audit entry")
	}

	switch entry.Action {
	case models.ActionDelete:
		return db.Transaction(func(tx *gorm.DB) error {
			entity, err := newEntity(entry.Target)
			if err != nil {
				return err
			}
			if entry.PreviousValue == nil {
				return pkgerrors.New("audit entry has no previous value to restore")
			}
			if err := json.Unmarshal([]byte(*entry.PreviousValue), entity); err != nil {
				return pkgerrors.Wrap(err, "decoding previous snapshot")
			}
			if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
				return pkgerrors.Wrap(err, "re-creating record")
			}
			return Record(tx, entry.Target, entry.EntityID, models.ActionCreate, nil, entity, actor.ID)
		})

	case models.ActionUpdate:
		return db.Transaction(func(tx *gorm.DB) error {
			current, err := newEntity(entry.Target)
			if err != nil {
				return err
			}
			if err := tx.First(current, entry.EntityID).Error; err != nil {
				if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.Wrapf(err, "entity %s/%d no longer exists", entry.Target, entry.EntityID)
				}
				return pkgerrors.Wrap(err, "loading current record")
			}

			restored, err := newEntity(entry.Target)
			if err != nil {
				return err
			}
			if entry.PreviousValue == nil {
				return pkgerrors.New("audit entry has no previous value to restore")
			}
			if err := json.Unmarshal([]byte(*entry.PreviousValue), restored); err != nil {
				return pkgerrors.Wrap(err, "decoding previous snapshot")
			}
			if err := tx.Omit(clause.Associations).Save(restored).Error; err != nil {
				return pkgerrors.Wrap(err, "restoring record")
			}
			return Record(tx, entry.Target, entry.EntityID, models.ActionUpdate, current, restored, actor.ID)
		})

	case models.ActionCreate:
		return ErrRollbackUnsupported

	default:
		return pkgerrors.Errorf("audit entry has unknown action %q", entry.Action)
	}
}
