package service_test

import (
	"context"
	"fmt"
	"testing"

	"notes-sharing-be/internal/dto"
	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/pkg/apperrors"
	"notes-sharing-be/internal/repository/memory"
	"notes-sharing-be/internal/repository/unitofwork"
	"notes-sharing-be/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	notes      service.INoteService
	ledger     service.ISharingLedger
	uowFactory unitofwork.RepositoryFactory
	alice      uuid.UUID
	bob        uuid.UUID
}

func newNoteFixture(t *testing.T) *noteFixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	ledger := service.NewSharingLedger(nopLogger{})
	notes := service.NewNoteService(factory, ledger, nil, nopLogger{})

	f := &noteFixture{
		notes:      notes,
		ledger:     ledger,
		uowFactory: factory,
		alice:      uuid.New(),
		bob:        uuid.New(),
	}

	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserRepository().Create(ctx, &entity.User{Id: f.alice, Username: "alice", Email: "alice@example.com"}))
	require.NoError(t, uow.UserRepository().Create(ctx, &entity.User{Id: f.bob, Username: "bob", Email: "bob@example.com"}))
	return f
}

func TestCreateGrantsOwnerAccess(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{
		Title:   "Groceries",
		Content: "Milk and eggs",
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice, created.OwnerId)

	uow := f.uowFactory.NewUnitOfWork(ctx)
	hasAccess, err := f.ledger.HasAccess(ctx, uow, f.alice, created.Id)
	require.NoError(t, err)
	assert.True(t, hasAccess)

	listed, err := f.notes.List(ctx, f.alice, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Id, listed[0].Id)
}

func TestShowRequiresOwnership(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Private", Content: "Diary"})
	require.NoError(t, err)

	_, err = f.notes.Show(ctx, f.bob, created.Id)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Note not found for the authenticated user.", appErr.Message)
}

func TestSharedNoteIsListedButNotShown(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Shared", Content: "For bob"})
	require.NoError(t, err)
	require.NoError(t, f.notes.Share(ctx, f.alice, created.Id, f.bob))

	// Listing goes through the sharing ledger.
	listed, err := f.notes.List(ctx, f.bob, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.Id, listed[0].Id)

	// Direct reads stay owner-only.
	_, err = f.notes.Show(ctx, f.bob, created.Id)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestUpdateIsPartial(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Draft", Content: "Original"})
	require.NoError(t, err)

	newTitle := "Final"
	updated, err := f.notes.Update(ctx, f.alice, created.Id, &dto.UpdateNoteRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "Original", updated.Content)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Mine", Content: "Keep out"})
	require.NoError(t, err)
	require.NoError(t, f.notes.Share(ctx, f.alice, created.Id, f.bob))

	newTitle := "Hijacked"
	_, err = f.notes.Update(ctx, f.bob, created.Id, &dto.UpdateNoteRequest{Title: &newTitle})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestDeleteCascadesLedgerRows(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Ephemeral", Content: "Soon gone"})
	require.NoError(t, err)
	require.NoError(t, f.notes.Share(ctx, f.alice, created.Id, f.bob))

	require.NoError(t, f.notes.Delete(ctx, f.alice, created.Id))

	listed, err := f.notes.List(ctx, f.bob, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, listed)

	uow := f.uowFactory.NewUnitOfWork(ctx)
	hasAccess, err := f.ledger.HasAccess(ctx, uow, f.bob, created.Id)
	require.NoError(t, err)
	assert.False(t, hasAccess)
}

func TestShareDuplicateRejected(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Once", Content: "Only once"})
	require.NoError(t, err)

	require.NoError(t, f.notes.Share(ctx, f.alice, created.Id, f.bob))

	err = f.notes.Share(ctx, f.alice, created.Id, f.bob)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Note is already shared with the specified user.", appErr.Message)
}

func TestShareUnknownReceiver(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Lost", Content: "No receiver"})
	require.NoError(t, err)

	err = f.notes.Share(ctx, f.alice, created.Id, uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "User with specified ID not found.", appErr.Message)
}

func TestShareRequiresOwnership(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	created, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Alice's", Content: "Hands off"})
	require.NoError(t, err)

	err = f.notes.Share(ctx, f.bob, created.Id, f.bob)
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)
}

func TestListPaginates(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{
			Title:   fmt.Sprintf("Note %d", i),
			Content: "Body",
		})
		require.NoError(t, err)
	}

	first, err := f.notes.List(ctx, f.alice, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first, 10)

	second, err := f.notes.List(ctx, f.alice, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second, 5)

	// No overlap between pages.
	seen := make(map[uuid.UUID]bool)
	for _, n := range first {
		seen[n.Id] = true
	}
	for _, n := range second {
		assert.False(t, seen[n.Id])
	}
}

func TestListReturnsInsertionOrder(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		_, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: title, Content: "Body"})
		require.NoError(t, err)
	}

	listed, err := f.notes.List(ctx, f.alice, 1, 10)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, title := range titles {
		assert.Equal(t, title, listed[i].Title)
	}
}

func TestListClampsPageSize(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	for i := 0; i < 120; i++ {
		_, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{
			Title:   fmt.Sprintf("Note %d", i),
			Content: "Body",
		})
		require.NoError(t, err)
	}

	listed, err := f.notes.List(ctx, f.alice, 1, 1000)
	require.NoError(t, err)
	assert.Len(t, listed, 100)
}

func TestListNormalizesPagination(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	_, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Only", Content: "One"})
	require.NoError(t, err)

	listed, err := f.notes.List(ctx, f.alice, -3, 0)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSearchFiltersByQueryAndAccess(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	match, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Project kickoff", Content: "Agenda"})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Shopping", Content: "Bread"})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, f.bob, &dto.CreateNoteRequest{Title: "Project secrets", Content: "Bob only"})
	require.NoError(t, err)

	results, err := f.notes.Search(ctx, f.alice, "project", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.Id, results[0].Id)
}

func TestSearchMatchesContent(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	match, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Untitled", Content: "Remember the deadline"})
	require.NoError(t, err)

	results, err := f.notes.Search(ctx, f.alice, "deadline", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.Id, results[0].Id)
}

func TestSearchTreatsQueryLiterally(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	match, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "100% done", Content: "Shipped"})
	require.NoError(t, err)
	_, err = f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Almost done", Content: "Not yet"})
	require.NoError(t, err)

	results, err := f.notes.Search(ctx, f.alice, "%", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.Id, results[0].Id)
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	f := newNoteFixture(t)
	ctx := context.Background()

	_, err := f.notes.Create(ctx, f.alice, &dto.CreateNoteRequest{Title: "Anything", Content: "At all"})
	require.NoError(t, err)

	results, err := f.notes.Search(ctx, f.alice, "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
