package service

import (
	"context"
	"errors"

	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/pkg/logger"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// ErrAlreadyGranted signals that an active ledger row for the (user, note)
// pair already exists.
var ErrAlreadyGranted = errors.New("access already granted")

// ISharingLedger is the single authority on who may read which note. Every
// grant, owner or recipient alike, is one ledger row. Callers pass their unit
// of work so grants can participate in the caller's transaction.
type ISharingLedger interface {
	GrantAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) error
	ListAccessibleNoteIds(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]uuid.UUID, error)
	HasAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (bool, error)
}

type sharingLedger struct {
	logger logger.ILogger
}

func NewSharingLedger(logger logger.ILogger) ISharingLedger {
	return &sharingLedger{logger: logger}
}

func (l *sharingLedger) GrantAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) error {
	repo := uow.UserNoteMappingRepository()

	existing, err := repo.FindOne(ctx,
		specification.MappingForUser{UserID: userId},
		specification.MappingForNote{NoteID: noteId},
		specification.ActiveMappings{},
	)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyGranted
	}

	mapping := &entity.UserNoteMapping{
		Id:     uuid.New(),
		UserId: userId,
		NoteId: noteId,
	}
	if err := repo.Create(ctx, mapping); err != nil {
		return err
	}

	l.logger.Debug("sharing_ledger", "access granted", map[string]interface{}{
		"user_id": userId.String(),
		"note_id": noteId.String(),
	})
	return nil
}

func (l *sharingLedger) ListAccessibleNoteIds(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]uuid.UUID, error) {
	mappings, err := uow.UserNoteMappingRepository().FindAll(ctx,
		specification.MappingForUser{UserID: userId},
		specification.ActiveMappings{},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(mappings))
	for _, m := range mappings {
		ids = append(ids, m.NoteId)
	}
	return ids, nil
}

func (l *sharingLedger) HasAccess(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (bool, error) {
	mapping, err := uow.UserNoteMappingRepository().FindOne(ctx,
		specification.MappingForUser{UserID: userId},
		specification.MappingForNote{NoteID: noteId},
		specification.ActiveMappings{},
	)
	if err != nil {
		return false, err
	}
	return mapping != nil, nil
}
