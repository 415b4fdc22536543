package arrivals

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/wayfarer-app/wayfarer/pkg/redis_client"
)

const cacheExpiration = 30 * time.Second

// CachedSource wraps another Source with a short-lived redis cache so that
// the periodic monitor and post-advance checks don't hammer the upstream API.
type CachedSource struct {
	Inner Source

	cache *cache.Cache[string]
}

func NewCachedSource(inner Source) *CachedSource {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(cacheExpiration))

	return &CachedSource{
		Inner: inner,
		cache: cache.New[string](redisStore),
	}
}

func (s *CachedSource) GetArrivals(ctx context.Context, stopName string, serviceNumber string) ([]ServiceArrivals, error) {
	cacheKey := fmt.Sprintf("arrivals/%s/%s", stopName, serviceNumber)

	cached, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var serviceArrivals []ServiceArrivals
		if err := json.Unmarshal([]byte(cached), &serviceArrivals); err == nil {
			return serviceArrivals, nil
		}
	}

	serviceArrivals, err := s.Inner.GetArrivals(ctx, stopName, serviceNumber)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(serviceArrivals); err == nil {
		s.cache.Set(ctx, cacheKey, string(encoded))
	}

	return serviceArrivals, nil
}
