package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls [][]string
	err   error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Embed(_ context.Context, texts []string) ([][]float64, error) {
	p.calls = append(p.calls, append([]string(nil), texts...))
	if p.err != nil {
		return nil, p.err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = []float64{float64(len(t)), 1}
	}
	return out, nil
}

type failingStore struct{}

func (failingStore) GetMany(context.Context, []string) (map[string][]float64, error) {
	return nil, errors.New("store down")
}

func (failingStore) SetMany(context.Context, map[string][]float64) error {
	return errors.New("store down")
}

func TestCachedProvider_EmbedsOnlyMisses(t *testing.T) {
	inner := &countingProvider{}
	store := NewMemoryStore()
	c := NewCachedProvider(inner, store, nil)
	ctx := context.Background()

	first, err := c.Embed(ctx, []string{"a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1}, {2, 1}}, first)
	assert.Equal(t, 2, store.Len())

	second, err := c.Embed(ctx, []string{"bb", "ccc", "a"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 1}, {3, 1}, {1, 1}}, second)

	require.Len(t, inner.calls, 2)
	assert.Equal(t, []string{"ccc"}, inner.calls[1])
}

func TestCachedProvider_AllHitsSkipsProvider(t *testing.T) {
	inner := &countingProvider{}
	c := NewCachedProvider(inner, NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := c.Embed(ctx, []string{"x"})
	require.NoError(t, err)
	_, err = c.Embed(ctx, []string{"x"})
	require.NoError(t, err)

	assert.Len(t, inner.calls, 1)
}

func TestCachedProvider_StoreFailureFallsThrough(t *testing.T) {
	inner := &countingProvider{}
	c := NewCachedProvider(inner, failingStore{}, nil)

	vecs, err := c.Embed(context.Background(), []string{"abc"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{3, 1}}, vecs)
}

func TestCachedProvider_ProviderErrorPropagates(t *testing.T) {
	inner := &countingProvider{err: errors.New("quota")}
	c := NewCachedProvider(inner, NewMemoryStore(), nil)

	_, err := c.Embed(context.Background(), []string{"abc"})
	assert.EqualError(t, err, "quota")
}

func TestCachedProvider_Name(t *testing.T) {
	c := NewCachedProvider(&countingProvider{}, NewMemoryStore(), nil)
	assert.Equal(t, "counting", c.Name())
}

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("gemini/text-embedding-004", "hello")
	k2 := CacheKey("openai/text-embedding-3-small", "hello")
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, CacheKey("gemini/text-embedding-004", "hello"))
	assert.Len(t, k1, len("emb:")+64)
}

func TestMemoryStore_CopiesOnSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	v := []float64{1, 2}
	require.NoError(t, s.SetMany(ctx, map[string][]float64{"k": v}))
	v[0] = 99

	got, err := s.GetMany(ctx, []string{"k", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]float64{"k": {1, 2}}, got)
}

type closingStore struct {
	*MemoryStore
	closed bool
}

func (s *closingStore) Close() error {
	s.closed = true
	return nil
}

func TestCachedProvider_Close(t *testing.T) {
	store := &closingStore{MemoryStore: NewMemoryStore()}
	c := NewCachedProvider(&countingProvider{}, store, nil)

	require.NoError(t, c.Close())
	assert.True(t, store.closed)

	assert.NoError(t, NewCachedProvider(&countingProvider{}, NewMemoryStore(), nil).Close())
}
