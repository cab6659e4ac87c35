package mapper

import (
	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/model"
)

type ShareMapper struct{}

func NewShareMapper() *ShareMapper {
	return &ShareMapper{}
}

func (m *ShareMapper) ToEntity(s *model.UserNoteMapping) *entity.UserNoteMapping {
	if s == nil {
		return nil
	}
	return &entity.UserNoteMapping{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		IsDeleted: s.IsDeleted,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ShareMapper) ToModel(s *entity.UserNoteMapping) *model.UserNoteMapping {
	if s == nil {
		return nil
	}
	return &model.UserNoteMapping{
		Id:        s.Id,
		UserId:    s.UserId,
		NoteId:    s.NoteId,
		IsDeleted: s.IsDeleted,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ShareMapper) ToEntities(mappings []*model.UserNoteMapping) []*entity.UserNoteMapping {
	entities := make([]*entity.UserNoteMapping, len(mappings))
	for i, s := range mappings {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
