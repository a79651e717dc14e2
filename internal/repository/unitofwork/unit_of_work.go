package unitofwork

import (
	"context"

	"notemark-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MentionTargetRepository() contract.MentionTargetRepository
}
