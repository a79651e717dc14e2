package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/entity"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const mentionModule = "MentionService"

// IMentionService manages the name registry. It also serves as the
// resolver.Lookup behind mention resolution.
type IMentionService interface {
	Upsert(ctx context.Context, userId string, req *dto.UpsertMentionRequest) (*dto.MentionTargetResponse, error)
	Show(ctx context.Context, kind, externalId string) (*dto.MentionTargetResponse, error)
	List(ctx context.Context, kind string) ([]*dto.MentionTargetResponse, error)
	Delete(ctx context.Context, kind, externalId string) error

	FindExternalID(ctx context.Context, kind, name string) (string, error)
	FindName(ctx context.Context, kind, externalID string) (string, error)
}

type mentionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	log              logger.ILogger
}

func NewMentionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IMentionService {
	return &mentionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		log:              log,
	}
}

// Upsert keys entries on (kind, name). Renaming an external id is done by
// upserting the new name; the old name keeps resolving until deleted.
func (s *mentionService) Upsert(ctx context.Context, userId string, req *dto.UpsertMentionRequest) (*dto.MentionTargetResponse, error) {
	name := strings.TrimSpace(req.Name)
	externalId := strings.TrimSpace(req.ExternalId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.MentionTargetRepository()
	target, err := repo.FindOne(ctx,
		specification.ByKind{Kind: req.Kind},
		specification.ByName{Name: name},
	)
	if err != nil {
		return nil, err
	}

	if target == nil {
		target = &entity.MentionTarget{
			Id:         uuid.New(),
			Kind:       req.Kind,
			Name:       name,
			ExternalId: externalId,
			CreatedAt:  time.Now(),
		}
		if userId != "" {
			target.CreatedBy = &userId
		}
		if err := repo.Create(ctx, target); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		target.Name = name
		target.ExternalId = externalId
		target.UpdatedAt = &now
		if err := repo.Update(ctx, target); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.publishChange(ctx, target, false); err != nil {
		return nil, err
	}

	s.log.Info(mentionModule, "Mention target saved", map[string]interface{}{
		"kind":        target.Kind,
		"name":        target.Name,
		"external_id": target.ExternalId,
	})

	return toMentionResponse(target), nil
}

func (s *mentionService) Show(ctx context.Context, kind, externalId string) (*dto.MentionTargetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	target, err := uow.MentionTargetRepository().FindOne(ctx,
		specification.ByKind{Kind: kind},
		specification.ByExternalID{ExternalID: externalId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrMentionNotFound
	}
	return toMentionResponse(target), nil
}

func (s *mentionService) List(ctx context.Context, kind string) ([]*dto.MentionTargetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	targets, err := uow.MentionTargetRepository().FindAll(ctx,
		specification.ByKind{Kind: kind},
		specification.OrderBy{Field: "name"},
		specification.Pagination{Limit: 500},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MentionTargetResponse, 0, len(targets))
	for _, t := range targets {
		result = append(result, toMentionResponse(t))
	}
	return result, nil
}

// Delete removes every name registered for the external id and evicts
// their cache entries once committed.
func (s *mentionService) Delete(ctx context.Context, kind, externalId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.MentionTargetRepository()
	targets, err := repo.FindAll(ctx,
		specification.ByKind{Kind: kind},
		specification.ByExternalID{ExternalID: externalId},
	)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return ErrMentionNotFound
	}

	for _, t := range targets {
		if err := repo.Delete(ctx, t.Id); err != nil {
			return fmt.Errorf("delete mention target %s: %w", t.Id, err)
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	for _, t := range targets {
		if err := s.publishChange(ctx, t, true); err != nil {
			return err
		}
	}
	s.log.Info(mentionModule, "Mention targets deleted", map[string]interface{}{
		"kind":        kind,
		"external_id": externalId,
		"count":       len(targets),
	})
	return nil
}

// publishChange tells cache consumers about a committed write. Publish
// failures are logged, the write itself already succeeded.
func (s *mentionService) publishChange(ctx context.Context, target *entity.MentionTarget, removed bool) error {
	msg, err := json.Marshal(dto.MentionUpdatedMessage{
		Kind:       target.Kind,
		Name:       target.Name,
		ExternalId: target.ExternalId,
		Removed:    removed,
	})
	if err != nil {
		return err
	}
	if err := s.publisherService.Publish(ctx, msg); err != nil {
		s.log.Warn(mentionModule, "Failed to publish mention update", map[string]interface{}{
			"kind":    target.Kind,
			"name":    target.Name,
			"removed": removed,
			"error":   err.Error(),
		})
	}
	return nil
}

func (s *mentionService) FindExternalID(ctx context.Context, kind, name string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	target, err := uow.MentionTargetRepository().FindOne(ctx,
		specification.ByKind{Kind: kind},
		specification.ByName{Name: strings.TrimSpace(name)},
	)
	if err != nil || target == nil {
		return "", err
	}
	return target.ExternalId, nil
}

// FindName accepts ids with or without dashes.
func (s *mentionService) FindName(ctx context.Context, kind, externalID string) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MentionTargetRepository()

	for _, candidate := range idForms(externalID) {
		target, err := repo.FindOne(ctx,
			specification.ByKind{Kind: kind},
			specification.ByExternalID{ExternalID: candidate},
			specification.OrderBy{Field: "updated_at", Desc: true},
		)
		if err != nil {
			return "", err
		}
		if target != nil {
			return target.Name, nil
		}
	}
	return "", nil
}

func idForms(id string) []string {
	id = strings.TrimSpace(id)
	forms := []string{id}
	if parsed, err := uuid.Parse(id); err == nil {
		dashed := parsed.String()
		compact := strings.ReplaceAll(dashed, "-", "")
		for _, f := range []string{dashed, compact} {
			if f != id {
				forms = append(forms, f)
			}
		}
	}
	return forms
}

func toMentionResponse(t *entity.MentionTarget) *dto.MentionTargetResponse {
	return &dto.MentionTargetResponse{
		Id:         t.Id,
		Kind:       t.Kind,
		Name:       t.Name,
		ExternalId: t.ExternalId,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
