package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertMentionRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=page database data_source user"`
	Name       string `json:"name" validate:"required,max=255"`
	ExternalId string `json:"external_id" validate:"required,max=64"`
}

type MentionTargetResponse struct {
	Id         uuid.UUID  `json:"id"`
	Kind       string     `json:"kind"`
	Name       string     `json:"name"`
	ExternalId string     `json:"external_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// MentionUpdatedMessage travels on the in-process bus after a registry write.
// Removed is set when the entry was deleted.
type MentionUpdatedMessage struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	ExternalId string `json:"external_id"`
	Removed    bool   `json:"removed,omitempty"`
}
