package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MappingForUser struct {
	UserID uuid.UUID
}

func (s MappingForUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type MappingForNote struct {
	NoteID uuid.UUID
}

func (s MappingForNote) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}

// ActiveMappings keeps only live ledger rows; inactive rows are kept around
// so the (user_id, note_id) unique index can be re-activated on re-share.
type ActiveMappings struct{}

func (s ActiveMappings) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
