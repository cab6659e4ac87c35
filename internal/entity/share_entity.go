package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserNoteMapping is one row of the sharing ledger: "UserId may view NoteId".
// The owner gets a row at note creation; recipients get one per share action.
// At most one active row may exist per (user, note) pair.
type UserNoteMapping struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	NoteId    uuid.UUID
	IsDeleted bool
	CreatedAt time.Time
}
