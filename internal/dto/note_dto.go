package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest carries a partial update; nil fields are left untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type ShareNoteRequest struct {
	ReceiverId uuid.UUID `json:"receiverId" validate:"required"`
}

// NoteResponse keeps the public wire names of the original API.
type NoteResponse struct {
	Id        uuid.UUID `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	OwnerId   uuid.UUID `json:"ownerId"`
}

// NoteActivityMessage is the payload published on the note activity topic
// and consumed by the audit trail worker.
type NoteActivityMessage struct {
	Action  string    `json:"action"`
	NoteId  uuid.UUID `json:"note_id"`
	ActorId uuid.UUID `json:"actor_id"`
}
