package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MentionTarget maps a display name to the upstream id of a page,
// database, data source or user.
type MentionTarget struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind       string         `gorm:"type:varchar(32);not null;index:idx_mention_kind_name;index:idx_mention_kind_external"`
	Name       string         `gorm:"type:varchar(255);not null;index:idx_mention_kind_name"`
	ExternalId string         `gorm:"type:varchar(64);not null;index:idx_mention_kind_external"`
	CreatedBy  *string        `gorm:"type:varchar(255)"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (MentionTarget) TableName() string {
	return "mention_targets"
}
