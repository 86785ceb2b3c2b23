package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/games-api/internal/config"
)

// newRedisCache connects to a local Redis or skips the test.
func newRedisCache(t *testing.T) *CacheService {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available: %v", err)
	}

	prefix := "games-api-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return NewCacheServiceWithClient(client, prefix, time.Minute)
}

func TestNewCacheService_DisabledWithoutRedis(t *testing.T) {
	cache, err := NewCacheService(&config.Config{API: config.APIConfig{CacheTTLSeconds: 300}})
	require.NoError(t, err)
	assert.False(t, cache.Enabled())
	assert.NoError(t, cache.Close())
}

func TestRemember_DisabledAlwaysComputes(t *testing.T) {
	var cache *CacheService
	calls := 0
	compute := func() (*TagListResult, error) {
		calls++
		return &TagListResult{Count: 1, Results: []string{"Puzzle"}}, nil
	}

	for i := 0; i < 2; i++ {
		result, err := Remember(context.Background(), cache, "tags", compute)
		require.NoError(t, err)
		assert.Equal(t, []string{"Puzzle"}, result.Results)
	}
	assert.Equal(t, 2, calls)
}

func TestRemember_ConcurrentMissesShareOneCompute(t *testing.T) {
	cache := &CacheService{}
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func() (*TagListResult, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return &TagListResult{Count: 1, Results: []string{"Puzzle"}}, nil
	}

	const callers = 8
	results := make([]*TagListResult, callers)
	var wg sync.WaitGroup
	run := func(i int) {
		defer wg.Done()
		result, err := Remember(context.Background(), cache, "tags", compute)
		assert.NoError(t, err)
		results[i] = result
	}

	wg.Add(callers)
	go run(0)
	<-started
	for i := 1; i < callers; i++ {
		go run(i)
	}
	// Give the followers time to join the in-flight load
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, result := range results {
		require.NotNil(t, result)
		assert.Equal(t, []string{"Puzzle"}, result.Results)
	}
}

func TestRemember_ComputeErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	_, err := Remember(context.Background(), nil, "tags", func() (*TagListResult, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestRemember_RedisHit(t *testing.T) {
	cache := newRedisCache(t)
	ctx := context.Background()

	calls := 0
	compute := func() (*TagSearchResult, error) {
		calls++
		return &TagSearchResult{Tag: "Puzzle", Count: 0, Results: []GameSummary{}}, nil
	}

	first, err := Remember(ctx, cache, "games-by-tag?tag=Puzzle", compute)
	require.NoError(t, err)
	second, err := Remember(ctx, cache, "games-by-tag?tag=Puzzle", compute)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.NotNil(t, second.Results)
}
