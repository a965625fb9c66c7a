package enrichment

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"alcyxob/lifetrack/internal/domain"
)

const nutritionKeyPrefix = "nutrition:"

// NutritionCache is the slice of the Redis client the lookup cache uses.
// *redis.Client satisfies it.
type NutritionCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedNutritionProvider keeps lookup results in Redis for ttl. Only
// external lookups are cached here; user records never go through Redis.
// A Redis outage degrades to calling next directly, and errors from next
// are passed through uncached.
type CachedNutritionProvider struct {
	next NutritionProvider
	rdb  NutritionCache
	ttl  time.Duration
	log  *zap.Logger
}

// NewCachedNutritionProvider creates a new CachedNutritionProvider.
func NewCachedNutritionProvider(next NutritionProvider, rdb NutritionCache, ttl time.Duration, log *zap.Logger) *CachedNutritionProvider {
	return &CachedNutritionProvider{next: next, rdb: rdb, ttl: ttl, log: log}
}

func (p *CachedNutritionProvider) Search(ctx context.Context, query string) ([]domain.NutritionFacts, error) {
	norm := strings.ToLower(strings.TrimSpace(query))
	if norm == "" {
		return nil, ErrEmptyQuery
	}
	key := nutritionKeyPrefix + norm

	cached, err := p.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var facts []domain.NutritionFacts
		if jsonErr := json.Unmarshal([]byte(cached), &facts); jsonErr == nil {
			return facts, nil
		}
		p.log.Warn("discarding unreadable cache entry", zap.String("key", key))
	case err != redis.Nil:
		p.log.Warn("nutrition cache read failed", zap.String("key", key), zap.Error(err))
	}

	facts, err := p.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(facts); jsonErr == nil {
		if setErr := p.rdb.Set(ctx, key, data, p.ttl).Err(); setErr != nil {
			p.log.Warn("nutrition cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return facts, nil
}

// NewRedisClient connects and pings, like the other backends at startup.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 2,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
