package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"notemark-be/internal/dto"
	"notemark-be/internal/entity"
	"notemark-be/internal/pkg/logger"
	"notemark-be/internal/repository/contract"
	"notemark-be/internal/repository/specification"
	"notemark-be/internal/repository/unitofwork"
	"notemark-be/pkg/resolver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryMentionRepo filters with the same specification values the gorm
// repository receives.
type memoryMentionRepo struct {
	mu      sync.Mutex
	targets map[uuid.UUID]*entity.MentionTarget
}

func (r *memoryMentionRepo) match(t *entity.MentionTarget, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByKind:
			if t.Kind != s.Kind {
				return false
			}
		case specification.ByName:
			if !strings.EqualFold(t.Name, s.Name) {
				return false
			}
		case specification.ByExternalID:
			if t.ExternalId != s.ExternalID {
				return false
			}
		}
	}
	return true
}

func (r *memoryMentionRepo) Create(_ context.Context, t *entity.MentionTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *t
	r.targets[t.Id] = &c
	return nil
}

func (r *memoryMentionRepo) Update(ctx context.Context, t *entity.MentionTarget) error {
	return r.Create(ctx, t)
}

func (r *memoryMentionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.targets, id)
	return nil
}

func (r *memoryMentionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentionTarget, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memoryMentionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.MentionTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.MentionTarget
	for _, t := range r.targets {
		if r.match(t, specs) {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memoryMentionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type memoryUnitOfWork struct {
	repo      *memoryMentionRepo
	committed bool
}

func (u *memoryUnitOfWork) Begin(context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error               { u.committed = true; return nil }
func (u *memoryUnitOfWork) Rollback() error             { return nil }
func (u *memoryUnitOfWork) MentionTargetRepository() contract.MentionTargetRepository {
	return u.repo
}

type memoryFactory struct {
	repo *memoryMentionRepo
}

func (f *memoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{repo: f.repo}
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newMentionService() (IMentionService, *memoryMentionRepo, *capturingPublisher) {
	repo := &memoryMentionRepo{targets: map[uuid.UUID]*entity.MentionTarget{}}
	pub := &capturingPublisher{}
	return NewMentionService(&memoryFactory{repo: repo}, pub, logger.NewNopLogger()), repo, pub
}

func TestMentionService_UpsertCreatesThenUpdates(t *testing.T) {
	svc, repo, pub := newMentionService()
	ctx := context.Background()

	created, err := svc.Upsert(ctx, "user-1", &dto.UpsertMentionRequest{Kind: "page", Name: " Roadmap ", ExternalId: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", created.Name)

	updated, err := svc.Upsert(ctx, "user-1", &dto.UpsertMentionRequest{Kind: "page", Name: "roadmap", ExternalId: "def"})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "def", updated.ExternalId)
	assert.Len(t, repo.targets, 1)

	require.Len(t, pub.payloads, 2)
	var msg dto.MentionUpdatedMessage
	require.NoError(t, json.Unmarshal(pub.payloads[1], &msg))
	assert.Equal(t, dto.MentionUpdatedMessage{Kind: "page", Name: "roadmap", ExternalId: "def"}, msg)
}

func TestMentionService_Lookup(t *testing.T) {
	svc, _, _ := newMentionService()
	ctx := context.Background()
	id := "1c2b3a4d-0000-4000-8000-00000000abcd"

	_, err := svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "database", Name: "Tasks", ExternalId: id})
	require.NoError(t, err)

	got, err := svc.FindExternalID(ctx, "database", "tasks")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	name, err := svc.FindName(ctx, "database", strings.ReplaceAll(id, "-", ""))
	require.NoError(t, err)
	assert.Equal(t, "Tasks", name)

	name, err = svc.FindName(ctx, "page", id)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestMentionService_ShowAndDelete(t *testing.T) {
	svc, _, _ := newMentionService()
	ctx := context.Background()

	_, err := svc.Show(ctx, "page", "missing")
	assert.ErrorIs(t, err, ErrMentionNotFound)

	_, err = svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "page", Name: "A", ExternalId: "x1"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "page", Name: "Alias", ExternalId: "x1"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "page")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, "page", "x1"))
	assert.ErrorIs(t, svc.Delete(ctx, "page", "x1"), ErrMentionNotFound)
}

func TestMentionService_DeletePublishesRemovals(t *testing.T) {
	svc, _, pub := newMentionService()
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "page", Name: "A", ExternalId: "x1"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "page", Name: "Alias", ExternalId: "x1"})
	require.NoError(t, err)
	pub.payloads = nil

	require.NoError(t, svc.Delete(ctx, "page", "x1"))

	require.Len(t, pub.payloads, 2)
	names := map[string]bool{}
	for _, payload := range pub.payloads {
		var msg dto.MentionUpdatedMessage
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.True(t, msg.Removed)
		assert.Equal(t, "x1", msg.ExternalId)
		names[msg.Name] = true
	}
	assert.Equal(t, map[string]bool{"A": true, "Alias": true}, names)
}

func TestMentionService_ServesAsResolverLookup(t *testing.T) {
	svc, _, _ := newMentionService()
	ctx := context.Background()
	_, err := svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "user", Name: "Ann", ExternalId: "u-1"})
	require.NoError(t, err)

	resolvers := resolver.NewResolvers(svc, nil)
	id, err := resolvers.User.ResolveNameToID(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)
}

func TestConsumerService_WarmsCache(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	cache := resolver.NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, NewConsumerService(pubSub, "mentions", cache).Consume(ctx))

	payload, err := json.Marshal(dto.MentionUpdatedMessage{Kind: "page", Name: "Roadmap", ExternalId: "abc"})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService("mentions", pubSub).Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		id, ok := cache.Get(ctx, resolver.NameKey("page", "roadmap"))
		return ok && id == "abc"
	}, time.Second, 10*time.Millisecond)

	name, ok := cache.Get(ctx, resolver.IDKey("page", "abc"))
	assert.True(t, ok)
	assert.Equal(t, "Roadmap", name)
}

func TestConsumerService_EvictsRemovedEntries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	cache := resolver.NewMemoryCache(time.Minute, time.Minute)
	resolver.Warm(ctx, cache, "page", "Roadmap", "abc")

	require.NoError(t, NewConsumerService(pubSub, "mentions", cache).Consume(ctx))

	payload, err := json.Marshal(dto.MentionUpdatedMessage{Kind: "page", Name: "Roadmap", ExternalId: "abc", Removed: true})
	require.NoError(t, err)
	require.NoError(t, NewPublisherService("mentions", pubSub).Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		_, ok := cache.Get(ctx, resolver.NameKey("page", "roadmap"))
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, ok := cache.Get(ctx, resolver.IDKey("page", "abc"))
	assert.False(t, ok)
}

func TestMentionService_DeletedNameStopsResolving(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	cache := resolver.NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, NewConsumerService(pubSub, "mentions", cache).Consume(ctx))

	repo := &memoryMentionRepo{targets: map[uuid.UUID]*entity.MentionTarget{}}
	svc := NewMentionService(&memoryFactory{repo: repo}, NewPublisherService("mentions", pubSub), logger.NewNopLogger())
	resolvers := resolver.NewResolvers(svc, cache)

	_, err := svc.Upsert(ctx, "", &dto.UpsertMentionRequest{Kind: "page", Name: "Roadmap", ExternalId: "abc"})
	require.NoError(t, err)
	id, err := resolvers.Page.ResolveNameToID(ctx, "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	require.NoError(t, svc.Delete(ctx, "page", "abc"))

	assert.Eventually(t, func() bool {
		id, err := resolvers.Page.ResolveNameToID(ctx, "Roadmap")
		return err == nil && id == ""
	}, time.Second, 10*time.Millisecond)
}
