package service

import (
	"context"
	"errors"
	"time"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/pkg/logger"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

const (
	activityNoteCreated = "NOTE_CREATED"
	activityNoteUpdated = "NOTE_UPDATED"
	activityNoteDeleted = "NOTE_DELETED"
	activityNoteShared  = "NOTE_SHARED"
)

type INoteService interface {
	Create(ctx context.Context, ownerId uuid.UUID, request *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, page, pageSize int) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId, noteId uuid.UUID, request *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId, noteId uuid.UUID) error
	Share(ctx context.Context, ownerId, noteId, receiverId uuid.UUID) error
	Search(ctx context.Context, userId uuid.UUID, query string, page, pageSize int) ([]*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     ISharingLedger
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	ledger ISharingLedger,
	publisher IPublisherService,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		ledger:     ledger,
		publisher:  publisher,
		logger:     logger,
	}
}

// Create persists the note and the owner's ledger row in one transaction, so
// a note can never exist without its owner being able to read it back.
func (s *noteService) Create(ctx context.Context, ownerId uuid.UUID, request *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	defer uow.Rollback()

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     request.Title,
		Content:   request.Content,
		OwnerId:   ownerId,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.ledger.GrantAccess(ctx, uow, ownerId, note.Id); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publishActivity(activityNoteCreated, note.Id, ownerId)
	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, page, pageSize int) ([]*dto.NoteResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ids, err := s.ledger.ListAccessibleNoteIds(ctx, uow, userId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(ids) == 0 {
		return []*dto.NoteResponse{}, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return toNoteResponses(notes), nil
}

func (s *noteService) Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, userId, noteId uuid.UUID, request *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		note.Title = *request.Title
	}
	if request.Content != nil {
		note.Content = *request.Content
	}
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publishActivity(activityNoteUpdated, note.Id, userId)
	return toNoteResponse(note), nil
}

// Delete removes the note and all of its ledger rows, the recipients'
// included, in one transaction.
func (s *noteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return apperrors.Internal(err)
	}
	defer uow.Rollback()

	note, err := s.findOwnedNote(ctx, uow, userId, noteId)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return apperrors.Internal(err)
	}
	if err := uow.UserNoteMappingRepository().DeleteAllForNote(ctx, note.Id); err != nil {
		return apperrors.Internal(err)
	}

	if err := uow.Commit(); err != nil {
		return apperrors.Internal(err)
	}

	s.publishActivity(activityNoteDeleted, note.Id, userId)
	return nil
}

func (s *noteService) Share(ctx context.Context, ownerId, noteId, receiverId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, ownerId, noteId)
	if err != nil {
		return err
	}

	receiver, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: receiverId})
	if err != nil {
		return apperrors.Internal(err)
	}
	if receiver == nil {
		return apperrors.NotFound("User with specified ID not found.")
	}

	if err := s.ledger.GrantAccess(ctx, uow, receiverId, note.Id); err != nil {
		if errors.Is(err, ErrAlreadyGranted) {
			return apperrors.BadRequest("Note is already shared with the specified user.")
		}
		return apperrors.Internal(err)
	}

	s.publishActivity(activityNoteShared, note.Id, ownerId)
	return nil
}

func (s *noteService) Search(ctx context.Context, userId uuid.UUID, query string, page, pageSize int) ([]*dto.NoteResponse, error) {
	if query == "" {
		return []*dto.NoteResponse{}, nil
	}
	page, pageSize = normalizePagination(page, pageSize)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ids, err := s.ledger.ListAccessibleNoteIds(ctx, uow, userId)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(ids) == 0 {
		return []*dto.NoteResponse{}, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.NoteSearchQuery{Query: query},
		specification.OrderBy{Field: "created_at"},
		specification.OrderBy{Field: "id"},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return toNoteResponses(notes), nil
}

// findOwnedNote resolves a note the caller owns. A note that exists but
// belongs to someone else is indistinguishable from a missing one.
func (s *noteService) findOwnedNote(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.NoteOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if note == nil {
		return nil, apperrors.NotFound("Note not found for the authenticated user.")
	}
	return note, nil
}

func (s *noteService) publishActivity(action string, noteId, actorId uuid.UUID) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.PublishNoteActivity(&dto.NoteActivityMessage{
		Action:  action,
		NoteId:  noteId,
		ActorId: actorId,
	})
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		OwnerId:   note.OwnerId,
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	responses := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, toNoteResponse(note))
	}
	return responses
}
