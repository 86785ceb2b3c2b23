// internal/services/cache_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/metrics"
)

// CacheService is a read-through JSON cache for query envelopes. The catalog
// is read-only to the API, so entries only expire by TTL. A nil client turns
// every call into a miss.
type CacheService struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	flight singleflight.Group // one compute per key at a time
}

func NewCacheService(cfg *config.Config) (*CacheService, error) {
	ttl := time.Duration(cfg.API.CacheTTLSeconds) * time.Second
	if !cfg.Redis.Enabled() || ttl <= 0 {
		// Caching disabled
		return &CacheService{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr(), err)
	}

	return NewCacheServiceWithClient(client, "games-api:", ttl), nil
}

func NewCacheServiceWithClient(client *redis.Client, prefix string, ttl time.Duration) *CacheService {
	return &CacheService{client: client, prefix: prefix, ttl: ttl}
}

func (s *CacheService) Enabled() bool {
	return s != nil && s.client != nil
}

// Get decodes the cached value for key into dest and reports a hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}

	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return true, nil
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Remember returns the cached value for key or computes, stores and returns
// it. Concurrent misses on the same key share one compute. Cache failures
// are logged and never fail the request.
func Remember[T any](ctx context.Context, s *CacheService, key string, compute func() (T, error)) (T, error) {
	var cached T
	hit, err := s.Get(ctx, key, &cached)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		logrus.WithError(err).WithField("key", key).Warn("Cache read failed")
	}
	if hit {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	if s.Enabled() && err == nil {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	load := func() (T, error) {
		value, err := compute()
		if err != nil {
			return value, err
		}
		if err := s.Set(ctx, key, value); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Cache write failed")
		}
		return value, nil
	}

	if s == nil {
		return load()
	}

	val, err, shared := s.flight.Do(key, func() (interface{}, error) {
		return load()
	})
	if shared {
		logrus.WithField("key", key).Debug("Shared in-flight load")
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return val.(T), nil
}

func (s *CacheService) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
