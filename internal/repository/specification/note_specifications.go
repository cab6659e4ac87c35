package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteOwnedBy scopes notes to their owner. Mutating operations use this;
// read-listing goes through the sharing ledger instead.
type NoteOwnedBy struct {
	UserID uuid.UUID
}

func (s NoteOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.UserID)
}
