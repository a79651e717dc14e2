package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const roadmapID = "1c2b3a4d-0000-4000-8000-00000000abcd"

type countingLookup struct {
	inner Lookup
	calls int
	err   error
}

func (c *countingLookup) FindExternalID(ctx context.Context, kind, name string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.inner.FindExternalID(ctx, kind, name)
}

func (c *countingLookup) FindName(ctx context.Context, kind, id string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return c.inner.FindName(ctx, kind, id)
}

func newLookup() *countingLookup {
	return &countingLookup{inner: NewStaticLookup(map[string]map[string]string{
		"page": {"Roadmap": roadmapID},
		"user": {"Ann": "0000aaaa-0000-4000-8000-000000000001"},
	})}
}

func TestResolver_NameToIDCaches(t *testing.T) {
	ctx := context.Background()
	lookup := newLookup()
	r := New("page", lookup, NewMemoryCache(time.Minute, time.Minute))

	id, err := r.ResolveNameToID(ctx, "roadmap")
	require.NoError(t, err)
	assert.Equal(t, roadmapID, id)

	id, err = r.ResolveNameToID(ctx, "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, roadmapID, id)
	assert.Equal(t, 1, lookup.calls)
}

func TestResolver_IDToName(t *testing.T) {
	r := New("page", newLookup(), nil)

	name, err := r.ResolveIDToName(context.Background(), roadmapID)
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", name)
}

func TestResolver_MissIsNotCached(t *testing.T) {
	ctx := context.Background()
	lookup := newLookup()
	r := New("page", lookup, NewMemoryCache(time.Minute, time.Minute))

	for i := 0; i < 2; i++ {
		id, err := r.ResolveNameToID(ctx, "Unknown")
		require.NoError(t, err)
		assert.Empty(t, id)
	}
	assert.Equal(t, 2, lookup.calls)
}

func TestResolver_KindsAreSeparate(t *testing.T) {
	resolvers := NewResolvers(newLookup(), nil)

	id, err := resolvers.User.ResolveNameToID(context.Background(), "Roadmap")
	require.NoError(t, err)
	assert.Empty(t, id)

	id, err = resolvers.Page.ResolveNameToID(context.Background(), "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, roadmapID, id)
}

func TestResolver_LookupError(t *testing.T) {
	lookup := newLookup()
	lookup.err = errors.New("db down")
	r := New("page", lookup, nil)

	_, err := r.ResolveNameToID(context.Background(), "Roadmap")
	assert.EqualError(t, err, "db down")
}

func TestTiered_BackfillsFasterTier(t *testing.T) {
	ctx := context.Background()
	fast := NewMemoryCache(time.Minute, time.Minute)
	slow := NewMemoryCache(time.Minute, time.Minute)
	slow.Set(ctx, "k", "v")

	tiered := NewTiered(fast, slow)
	val, ok := tiered.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", val)

	val, ok = fast.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	_, ok = tiered.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestWarm(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Minute, time.Minute)
	Warm(ctx, cache, "page", "Roadmap", roadmapID)

	r := New("page", &countingLookup{err: errors.New("should not be called")}, cache)
	id, err := r.ResolveNameToID(ctx, "ROADMAP")
	require.NoError(t, err)
	assert.Equal(t, roadmapID, id)

	name, err := r.ResolveIDToName(ctx, "1c2b3a4d00004000800000000000abcd")
	require.NoError(t, err)
	assert.Equal(t, "Roadmap", name)
}

func TestEvict_ClearsEveryTier(t *testing.T) {
	ctx := context.Background()
	fast := NewMemoryCache(time.Minute, time.Minute)
	slow := NewMemoryCache(time.Minute, time.Minute)
	tiered := NewTiered(fast, slow)
	Warm(ctx, tiered, "page", "Roadmap", roadmapID)

	Evict(ctx, tiered, "page", "roadmap", roadmapID)

	for _, c := range []Cache{fast, slow, tiered} {
		_, ok := c.Get(ctx, NameKey("page", "Roadmap"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, IDKey("page", roadmapID))
		assert.False(t, ok)
	}

	lookup := newLookup()
	r := New("page", lookup, tiered)
	id, err := r.ResolveNameToID(ctx, "Roadmap")
	require.NoError(t, err)
	assert.Equal(t, roadmapID, id)
	assert.Equal(t, 1, lookup.calls)
}

func TestLoadStaticLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database": {"Tasks": "abc"}}`), 0o644))

	lookup, err := LoadStaticLookup(path)
	require.NoError(t, err)

	id, err := lookup.FindExternalID(context.Background(), "database", "tasks")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)

	_, err = LoadStaticLookup(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
