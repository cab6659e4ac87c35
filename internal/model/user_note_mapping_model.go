package model

import (
	"time"

	"github.com/google/uuid"
)

// UserNoteMapping uses an explicit is_deleted flag instead of GORM soft delete:
// an inactive row must stay visible to queries so a future unshare/re-share can
// flip it rather than violate the composite unique index.
type UserNoteMapping struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_note"`
	NoteId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_note;index"`
	IsDeleted bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserNoteMapping) TableName() string {
	return "user_note_mappings"
}
