package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store persists vectors by cache key.
type Store interface {
	// GetMany returns the vectors found for keys. Missing keys are absent from the map.
	GetMany(ctx context.Context, keys []string) (map[string][]float64, error)
	// SetMany stores every vector in kvs.
	SetMany(ctx context.Context, kvs map[string][]float64) error
}

// CachedProvider wraps a Provider and reuses vectors previously computed for the same
// provider and text. Store failures are logged and never fail an Embed call.
type CachedProvider struct {
	inner  Provider
	store  Store
	logger *zap.Logger
}

// NewCachedProvider wraps inner with store
func NewCachedProvider(inner Provider, store Store, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{inner: inner, store: store, logger: logger}
}

// Name reports the wrapped provider's name so cached and uncached vectors share keys.
func (c *CachedProvider) Name() string {
	return c.inner.Name()
}

// Close releases the wrapped provider and store when they hold resources.
func (c *CachedProvider) Close() error {
	var errs []error
	if closer, ok := c.inner.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if closer, ok := c.store.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

// Embed serves hits from the store and embeds only the misses.
func (c *CachedProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	keys := make([]string, len(texts))
	for i, t := range texts {
		keys[i] = CacheKey(c.inner.Name(), t)
	}

	hits, err := c.store.GetMany(ctx, keys)
	if err != nil {
		c.logger.Warn("embedding cache read failed", zap.Error(err))
		hits = nil
	}

	out := make([][]float64, len(texts))
	var missTexts []string
	var missPos []int
	for i, k := range keys {
		if v, ok := hits[k]; ok && len(v) > 0 {
			out[i] = v
			continue
		}
		missTexts = append(missTexts, texts[i])
		missPos = append(missPos, i)
	}

	c.logger.Debug("embedding cache lookup",
		zap.Int("requested", len(texts)),
		zap.Int("hits", len(texts)-len(missTexts)))

	if len(missTexts) == 0 {
		return out, nil
	}

	vecs, err := c.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if err := checkCount(c.inner.Name(), len(missTexts), vecs); err != nil {
		return nil, err
	}

	fresh := make(map[string][]float64, len(vecs))
	for j, v := range vecs {
		out[missPos[j]] = v
		fresh[keys[missPos[j]]] = v
	}

	if err := c.store.SetMany(ctx, fresh); err != nil {
		c.logger.Warn("embedding cache write failed", zap.Error(err))
	}

	return out, nil
}

// CacheKey derives the store key for a provider/text pair.
func CacheKey(provider, text string) string {
	sum := sha256.Sum256([]byte(provider + "\x00" + text))
	return "emb:" + hex.EncodeToString(sum[:])
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]float64
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]float64)}
}

// GetMany implements Store
func (m *MemoryStore) GetMany(_ context.Context, keys []string) (map[string][]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]float64, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// SetMany implements Store
func (m *MemoryStore) SetMany(_ context.Context, kvs map[string][]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range kvs {
		m.data[k] = append([]float64(nil), v...)
	}
	return nil
}

// Len returns the number of cached vectors
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// RedisStore keeps vectors in Redis as JSON arrays.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// GetMany implements Store using a single MGET
func (r *RedisStore) GetMany(ctx context.Context, keys []string) (map[string][]float64, error) {
	out := make(map[string][]float64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, k := range keys {
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		var v []float64
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			continue
		}
		out[k] = v
	}
	return out, nil
}

// SetMany implements Store using a pipeline
func (r *RedisStore) SetMany(ctx context.Context, kvs map[string][]float64) error {
	if len(kvs) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for k, v := range kvs {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode vector: %w", err)
		}
		pipe.Set(ctx, k, b, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the underlying client
func (r *RedisStore) Close() error {
	return r.client.Close()
}
