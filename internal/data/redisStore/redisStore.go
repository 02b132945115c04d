package redisStore

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

var (
	instance *Store
	mu       sync.Mutex
	logger   *logger_i.Logger
)

type Store struct {
	client *redis.Client
}

// GetRedisStore connects once and returns nil when Redis is unreachable so
// callers can fall back to the in-memory store.
func GetRedisStore(ctx context.Context, addr, password string) *Store {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}
	if logger == nil {
		logger = logger_i.NewLogger("RedisStore")
	}

	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              password,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error())
		return nil
	}

	logger.Info("Redis store connected", "addr", addr)

	instance = &Store{client: client}
	go closeOnShutdown(ctx, instance)
	return instance
}

func closeOnShutdown(ctx context.Context, s *Store) {
	<-ctx.Done()
	logger.Info("Closing Redis store")
	if err := s.client.Close(); err != nil {
		logger.Error("Error closing redis client", "error", err)
	}
}

// NewTestStore wraps an externally managed client, for miniredis tests.
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
