package memory

import (
	"context"
	"time"

	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := *user
	r.store.users = append(r.store.users, &stored)
	return nil
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	for _, u := range r.store.users {
		if f.matchUser(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	result := make([]*entity.User, 0)
	for _, u := range r.store.users {
		if f.matchUser(u) {
			found := *u
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *userRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

type noteRepository struct {
	store *Store
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	stored := *note
	r.store.notes = append(r.store.notes, &stored)
	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, n := range r.store.notes {
		if n.Id == note.Id {
			stored := *note
			r.store.notes[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, n := range r.store.notes {
		if n.Id == id {
			now := time.Now()
			n.DeletedAt = &now
			n.IsDeleted = true
		}
	}
	return nil
}

func (r *noteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	for _, n := range r.store.notes {
		if f.matchNote(n) {
			found := *n
			return &found, nil
		}
	}
	return nil, nil
}

func (r *noteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	matched := make([]*entity.Note, 0)
	for _, n := range r.store.notes {
		if f.matchNote(n) {
			found := *n
			matched = append(matched, &found)
		}
	}
	return paginateNotes(matched, f), nil
}

func (r *noteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(notes)), nil
}

type mappingRepository struct {
	store *Store
}

func (r *mappingRepository) Create(ctx context.Context, mapping *entity.UserNoteMapping) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if mapping.Id == uuid.Nil {
		mapping.Id = uuid.New()
	}
	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now()
	}
	stored := *mapping
	r.store.mappings = append(r.store.mappings, &stored)
	return nil
}

func (r *mappingRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserNoteMapping, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	for _, m := range r.store.mappings {
		if f.matchMapping(m) {
			found := *m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *mappingRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserNoteMapping, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f := buildFilter(specs...)
	result := make([]*entity.UserNoteMapping, 0)
	for _, m := range r.store.mappings {
		if f.matchMapping(m) {
			found := *m
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *mappingRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	mappings, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(mappings)), nil
}

func (r *mappingRepository) DeleteAllForNote(ctx context.Context, noteId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.mappings[:0]
	for _, m := range r.store.mappings {
		if m.NoteId != noteId {
			kept = append(kept, m)
		}
	}
	r.store.mappings = kept
	return nil
}
