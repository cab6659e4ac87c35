package implementation

import (
	"context"
	"errors"

	"notes-sharing-be/internal/entity"
	"notes-sharing-be/internal/mapper"
	"notes-sharing-be/internal/model"
	"notes-sharing-be/internal/repository/contract"
	"notes-sharing-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserNoteMappingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareMapper
}

func NewUserNoteMappingRepository(db *gorm.DB) contract.UserNoteMappingRepository {
	return &UserNoteMappingRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareMapper(),
	}
}

func (r *UserNoteMappingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserNoteMappingRepositoryImpl) Create(ctx context.Context, mapping *entity.UserNoteMapping) error {
	m := r.mapper.ToModel(mapping)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mapping = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserNoteMappingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserNoteMapping, error) {
	var m model.UserNoteMapping
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserNoteMappingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserNoteMapping, error) {
	var models []*model.UserNoteMapping
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UserNoteMappingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserNoteMapping{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserNoteMappingRepositoryImpl) DeleteAllForNote(ctx context.Context, noteId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("note_id = ?", noteId).Delete(&model.UserNoteMapping{}).Error
}
