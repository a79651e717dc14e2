package implementation

import (
	"context"
	"errors"

	"notemark-be/internal/entity"
	"notemark-be/internal/mapper"
	"notemark-be/internal/model"
	"notemark-be/internal/repository/contract"
	"notemark-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentionTargetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MentionTargetMapper
}

func NewMentionTargetRepository(db *gorm.DB) contract.MentionTargetRepository {
	return &MentionTargetRepositoryImpl{
		db:     db,
		mapper: mapper.NewMentionTargetMapper(),
	}
}

func (r *MentionTargetRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MentionTargetRepositoryImpl) Create(ctx context.Context, target *entity.MentionTarget) error {
	m := r.mapper.ToModel(target)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*target = *r.mapper.ToEntity(m)
	return nil
}

// Update saves every column, zero values included.
func (r *MentionTargetRepositoryImpl) Update(ctx context.Context, target *entity.MentionTarget) error {
	m := r.mapper.ToModel(target)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*target = *r.mapper.ToEntity(m)
	return nil
}

func (r *MentionTargetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MentionTarget{}, id).Error
}

func (r *MentionTargetRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentionTarget, error) {
	var m model.MentionTarget
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MentionTargetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentionTarget, error) {
	var models []*model.MentionTarget
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MentionTargetRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MentionTarget{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
