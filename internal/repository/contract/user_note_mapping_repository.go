package contract

import (
	"context"

	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserNoteMappingRepository interface {
	Create(ctx context.Context, mapping *entity.UserNoteMapping) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserNoteMapping, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserNoteMapping, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DeleteAllForNote removes every ledger row of a note; runs inside the
	// note-delete transaction so no orphaned rows survive.
	DeleteAllForNote(ctx context.Context, noteId uuid.UUID) error
}
