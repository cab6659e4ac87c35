package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/repository/contract"
	"notes-sharing-be/internal/repository/specification"
	"notes-sharing-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store is an in-memory stand-in for the database, satisfying the repository
// contracts. It interprets the same specifications the GORM implementations
// apply, so services and tests can run against it without Postgres.
// Slices keep insertion order, which is what created_at ordering resolves to.
type Store struct {
	mu       sync.RWMutex
	users    []*entity.User
	notes    []*entity.Note
	mappings []*entity.UserNoteMapping
}

func NewStore() *Store {
	return &Store{}
}

// queryFilter is the interpreted form of a specification list.
type queryFilter struct {
	id          *uuid.UUID
	ids         []uuid.UUID
	username    *string
	email       *string
	ownerId     *uuid.UUID
	mapUserId   *uuid.UUID
	mapNoteId   *uuid.UUID
	activeOnly  bool
	searchQuery *string
	orders      []specification.OrderBy
	limit       int
	offset      int
}

func buildFilter(specs ...specification.Specification) queryFilter {
	f := queryFilter{limit: -1}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.ByIDs:
			f.ids = s.IDs
		case specification.ByUsername:
			v := s.Username
			f.username = &v
		case specification.ByEmail:
			v := s.Email
			f.email = &v
		case specification.NoteOwnedBy:
			v := s.UserID
			f.ownerId = &v
		case specification.MappingForUser:
			v := s.UserID
			f.mapUserId = &v
		case specification.MappingForNote:
			v := s.NoteID
			f.mapNoteId = &v
		case specification.ActiveMappings:
			f.activeOnly = true
		case specification.NoteSearchQuery:
			v := s.Query
			f.searchQuery = &v
		case specification.OrderBy:
			f.orders = append(f.orders, s)
		case specification.Pagination:
			f.limit = s.Limit
			f.offset = s.Offset
		}
	}
	return f
}

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (f queryFilter) matchUser(u *entity.User) bool {
	if f.id != nil && u.Id != *f.id {
		return false
	}
	if f.ids != nil && !containsId(f.ids, u.Id) {
		return false
	}
	if f.username != nil && u.Username != *f.username {
		return false
	}
	if f.email != nil && u.Email != *f.email {
		return false
	}
	return u.DeletedAt == nil
}

func (f queryFilter) matchNote(n *entity.Note) bool {
	if n.IsDeleted {
		return false
	}
	if f.id != nil && n.Id != *f.id {
		return false
	}
	if f.ids != nil && !containsId(f.ids, n.Id) {
		return false
	}
	if f.ownerId != nil && n.OwnerId != *f.ownerId {
		return false
	}
	if f.searchQuery != nil {
		q := strings.ToLower(*f.searchQuery)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	return true
}

func (f queryFilter) matchMapping(m *entity.UserNoteMapping) bool {
	if f.id != nil && m.Id != *f.id {
		return false
	}
	if f.mapUserId != nil && m.UserId != *f.mapUserId {
		return false
	}
	if f.mapNoteId != nil && m.NoteId != *f.mapNoteId {
		return false
	}
	if f.activeOnly && m.IsDeleted {
		return false
	}
	return true
}

// compareNotes orders a before b per the first order clause that
// distinguishes them. Only created_at and id are sortable.
func compareNotes(a, b *entity.Note, orders []specification.OrderBy) bool {
	for _, o := range orders {
		switch o.Field {
		case "created_at":
			if a.CreatedAt.Equal(b.CreatedAt) {
				continue
			}
			if o.Desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		case "id":
			cmp := bytes.Compare(a.Id[:], b.Id[:])
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
	}
	return false
}

func paginateNotes(notes []*entity.Note, f queryFilter) []*entity.Note {
	if len(f.orders) > 0 {
		sort.SliceStable(notes, func(i, j int) bool {
			return compareNotes(notes[i], notes[j], f.orders)
		})
	}
	if f.offset > 0 {
		if f.offset >= len(notes) {
			return []*entity.Note{}
		}
		notes = notes[f.offset:]
	}
	if f.limit >= 0 && f.limit < len(notes) {
		notes = notes[:f.limit]
	}
	return notes
}

// --- unit of work plumbing ---

type memoryUnitOfWork struct {
	store *Store
}

// Begin/Commit/Rollback are no-ops: writes apply immediately. Rollback in
// particular must tolerate the defer-Rollback-after-Commit pattern.
func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store}
}

func (u *memoryUnitOfWork) NoteRepository() contract.NoteRepository {
	return &noteRepository{store: u.store}
}

func (u *memoryUnitOfWork) UserNoteMappingRepository() contract.UserNoteMappingRepository {
	return &mappingRepository{store: u.store}
}

type factory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &factory{store: store}
}

func (f *factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{store: f.store}
}
