// Package resolver backs mention name lookups with a name registry and a
// cache in front of it.
package resolver

import (
	"context"
	"strings"

	"notemark-be/pkg/richtext"
)

// Lookup is the source of truth for mention names. Both methods return an
// empty string with a nil error when nothing matches.
type Lookup interface {
	FindExternalID(ctx context.Context, kind, name string) (string, error)
	FindName(ctx context.Context, kind, externalID string) (string, error)
}

// Cache stores resolved values. Misses and backend failures both report false.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Delete(ctx context.Context, key string)
}

// Resolver answers one mention kind. It implements richtext.NameIDResolver.
type Resolver struct {
	kind   string
	lookup Lookup
	cache  Cache
}

// New returns a resolver for kind. cache may be nil.
func New(kind string, lookup Lookup, cache Cache) *Resolver {
	return &Resolver{kind: kind, lookup: lookup, cache: cache}
}

// NewResolvers builds one resolver per mention kind over the same lookup and cache.
func NewResolvers(lookup Lookup, cache Cache) richtext.Resolvers {
	return richtext.Resolvers{
		Page:       New(string(richtext.MentionPage), lookup, cache),
		Database:   New(string(richtext.MentionDatabase), lookup, cache),
		DataSource: New(string(richtext.MentionDataSource), lookup, cache),
		User:       New(string(richtext.MentionUser), lookup, cache),
	}
}

func (r *Resolver) ResolveNameToID(ctx context.Context, name string) (string, error) {
	key := NameKey(r.kind, name)
	if id, ok := r.get(ctx, key); ok {
		return id, nil
	}
	id, err := r.lookup.FindExternalID(ctx, r.kind, name)
	if err != nil || id == "" {
		return "", err
	}
	r.set(ctx, key, id)
	return id, nil
}

func (r *Resolver) ResolveIDToName(ctx context.Context, id string) (string, error) {
	key := IDKey(r.kind, id)
	if name, ok := r.get(ctx, key); ok {
		return name, nil
	}
	name, err := r.lookup.FindName(ctx, r.kind, id)
	if err != nil || name == "" {
		return "", err
	}
	r.set(ctx, key, name)
	return name, nil
}

func (r *Resolver) get(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	return r.cache.Get(ctx, key)
}

func (r *Resolver) set(ctx context.Context, key, value string) {
	if r.cache != nil {
		r.cache.Set(ctx, key, value)
	}
}

// Warm stores both directions of a known mapping.
func Warm(ctx context.Context, cache Cache, kind, name, externalID string) {
	cache.Set(ctx, NameKey(kind, name), externalID)
	cache.Set(ctx, IDKey(kind, externalID), name)
}

// Evict drops both directions of a removed registry entry.
func Evict(ctx context.Context, cache Cache, kind, name, externalID string) {
	cache.Delete(ctx, NameKey(kind, name))
	cache.Delete(ctx, IDKey(kind, externalID))
}

// NameKey is case-insensitive on the name.
func NameKey(kind, name string) string {
	return "name:" + kind + ":" + strings.ToLower(strings.TrimSpace(name))
}

func IDKey(kind, id string) string {
	return "id:" + kind + ":" + strings.ToLower(strings.ReplaceAll(id, "-", ""))
}
