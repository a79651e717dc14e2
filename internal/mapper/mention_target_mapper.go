package mapper

import (
	"time"

	"notemark-be/internal/entity"
	"notemark-be/internal/model"

	"gorm.io/gorm"
)

type MentionTargetMapper struct{}

func NewMentionTargetMapper() *MentionTargetMapper {
	return &MentionTargetMapper{}
}

func (m *MentionTargetMapper) ToEntity(t *model.MentionTarget) *entity.MentionTarget {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.MentionTarget{
		Id:         t.Id,
		Kind:       t.Kind,
		Name:       t.Name,
		ExternalId: t.ExternalId,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  t.DeletedAt.Valid,
	}
}

func (m *MentionTargetMapper) ToModel(t *entity.MentionTarget) *model.MentionTarget {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.MentionTarget{
		Id:         t.Id,
		Kind:       t.Kind,
		Name:       t.Name,
		ExternalId: t.ExternalId,
		CreatedBy:  t.CreatedBy,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *MentionTargetMapper) ToEntities(targets []*model.MentionTarget) []*entity.MentionTarget {
	entities := make([]*entity.MentionTarget, len(targets))
	for i, t := range targets {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
