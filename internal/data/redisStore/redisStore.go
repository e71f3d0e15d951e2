package redisStore

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akolanti/DocProcessorAPI/internal/config"
	"github.com/akolanti/DocProcessorAPI/pkg/logger_i"
)

var (
	instance *Store
	mu       sync.Mutex
	logger   *logger_i.Logger
	once     sync.Once
)

type Store struct {
	client *redis.Client
}

// GetRedisStore connects once and reuses the client afterwards. Returns nil
// when Redis cannot be reached so the caller can fall back to another backend.
func GetRedisStore(ctx context.Context, addr string) *Store {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}
	return createNewStore(ctx, addr)
}

func createNewStore(ctx context.Context, addr string) *Store {
	if logger == nil {
		logger = logger_i.NewLogger("Redis Store")
	}

	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisConnectionTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline: ", "error", err.Error(), "addr", addr)
		return nil
	}

	logger.Info("Redis store init successfully", "addr", addr)

	instance = &Store{client: newClient}
	once.Do(func() {
		go closeRedisStore(ctx)
	})
	return instance
}

func closeRedisStore(ctx context.Context) {
	<-ctx.Done()
	logger.Info("Closing Redis store")
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		if err := instance.client.Close(); err != nil {
			logger.Error("Error closing redis client", "error", err)
		}
	}
	logger.Info("Redis store closed successfully")
}

// Only in a _test.go file
func NewTestStore(client *redis.Client) *Store {
	return &Store{client: client}
}
