package sitemap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DocumentCache stores rendered sitemap documents by name.
type DocumentCache interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Set(ctx context.Context, name string, body []byte) error
}

// NoopCache never stores anything.
type NoopCache struct{}

var _ DocumentCache = NoopCache{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, string, []byte) error         { return nil }

// MemoryCache keeps documents in process until their TTL passes.
type MemoryCache struct {
	mu   sync.RWMutex
	docs map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

type memoryEntry struct {
	body    []byte
	expires time.Time
}

var _ DocumentCache = (*MemoryCache)(nil)

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithMemoryTTL sets how long a document is served, 2h by default.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(c *MemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMemoryClock overrides the clock used for expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{docs: map[string]memoryEntry{}, ttl: defaultDocumentTTL, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, name string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.docs[name]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expires) {
		c.mu.Lock()
		if current, still := c.docs[name]; still && current.expires.Equal(entry.expires) {
			delete(c.docs, name)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.body, true, nil
}

func (c *MemoryCache) Set(_ context.Context, name string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[name] = memoryEntry{
		body:    append([]byte(nil), body...),
		expires: c.now().Add(c.ttl),
	}
	return nil
}

const (
	defaultRedisPrefix = "seo:sitemap:"
	defaultDocumentTTL = 2 * time.Hour
	redisPingTimeout   = 5 * time.Second
)

// ErrEmptyRedisAddress is returned when no Redis address is configured.
var ErrEmptyRedisAddress = errors.New("sitemap: redis address is required")

// RedisConfig holds the Redis connection settings of the document cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if strings.TrimSpace(cfg.Address) == "" {
		return nil, ErrEmptyRedisAddress
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("sitemap: redis ping failed: %w", err)
	}
	return client, nil
}

// RedisCache stores documents as Redis strings with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ DocumentCache = (*RedisCache)(nil)

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithKeyPrefix sets the key prefix, "seo:sitemap:" by default.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithTTL sets the document expiry. Zero keeps documents until overwritten.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache wraps client.
func NewRedisCache(client redis.UniversalClient, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, prefix: defaultRedisPrefix, ttl: defaultDocumentTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *RedisCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, c.prefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sitemap: redis get %s: %w", name, err)
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, name string, body []byte) error {
	if err := c.client.Set(ctx, c.prefix+name, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("sitemap: redis set %s: %w", name, err)
	}
	return nil
}
