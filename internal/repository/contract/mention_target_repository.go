package contract

import (
	"context"

	"notemark-be/internal/entity"
	"notemark-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MentionTargetRepository interface {
	Create(ctx context.Context, target *entity.MentionTarget) error
	Update(ctx context.Context, target *entity.MentionTarget) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentionTarget, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentionTarget, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
