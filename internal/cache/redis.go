package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is the shared listing cache. Invalidation bumps a generation counter
// that is folded into every key, so stale entries simply age out via TTL
// instead of needing a scan-and-delete.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

const genKey = "listings:gen"

func NewRedis(cfg RedisConfig) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, c.versioned(ctx, key)).Bytes()

	if err != nil {
		// treat any failure (miss or transport) as a cache miss
		return nil, false
	}

	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, val []byte) {
	_ = c.rdb.Set(ctx, c.versioned(ctx, key), val, c.ttl).Err()
}

func (c *Redis) Invalidate(ctx context.Context) {
	_ = c.rdb.Incr(ctx, genKey).Err()
}

func (c *Redis) versioned(ctx context.Context, key string) string {
	gen, err := c.rdb.Get(ctx, genKey).Int64()

	if err != nil {
		gen = 0
	}

	return "g" + strconv.FormatInt(gen, 10) + ":" + key
}
