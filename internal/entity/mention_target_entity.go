package entity

import (
	"time"

	"github.com/google/uuid"
)

type MentionTarget struct {
	Id         uuid.UUID
	Kind       string
	Name       string
	ExternalId string
	CreatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
