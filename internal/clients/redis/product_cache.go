package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/sportshop-backend/internal/platform/logger"
)

// ProductCache is a read-through cache for catalog payloads. A nil
// ProductCache is valid and disables caching.
type ProductCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context)
	Close() error
}

type productCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewProductCache(log *logger.Logger) (ProductCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &productCache{
		log: log.With("client", "ProductCache"),
		rdb: rdb,
		ttl: 5 * time.Minute,
	}, nil
}

func (pc *productCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := pc.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			pc.log.Warn("Cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (pc *productCache) Set(ctx context.Context, key string, payload []byte) {
	if err := pc.rdb.Set(ctx, cacheKey(key), payload, pc.ttl).Err(); err != nil {
		pc.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached catalog payload. Called on any product write.
func (pc *productCache) Invalidate(ctx context.Context) {
	iter := pc.rdb.Scan(ctx, 0, cacheKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := pc.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			pc.log.Warn("Cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		pc.log.Warn("Cache invalidation scan failed", "error", err)
	}
}

func (pc *productCache) Close() error {
	return pc.rdb.Close()
}

func cacheKey(key string) string {
	return "products:" + key
}
