package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appintegration "github.com/vendora/backend/internal/application/integration"
)

const defaultLockPrefix = "lock:"

// releaseScript deletes the lock only while the caller's token is still
// the stored value. GET and DEL run atomically inside Redis, so a
// holder whose TTL expired cannot free the lock of whoever re-acquired
// it in the meantime.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisPublishLock implements the publish advisory lock on Redis. It is
// suitable for multi-instance deployments where two admins approving the
// same product may hit different processes.
type RedisPublishLock struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisPublishLock creates a lock backed by a new Redis connection
func NewRedisPublishLock(cfg RedisConfig) (*RedisPublishLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPublishLock{client: client, keyPrefix: defaultLockPrefix}, nil
}

// NewRedisPublishLockWithClient creates a lock sharing an existing Redis
// client. Useful for testing or when the client is shared across
// components.
func NewRedisPublishLockWithClient(client *redis.Client, keyPrefix string) *RedisPublishLock {
	if keyPrefix == "" {
		keyPrefix = defaultLockPrefix
	}
	return &RedisPublishLock{client: client, keyPrefix: keyPrefix}
}

// Acquire takes the lock with a TTL, storing a fresh token as the value.
// Returns false when another holder already has it. SETNX makes the take
// atomic; the TTL bounds how long a crashed holder can block later
// publishes.
func (l *RedisPublishLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, l.keyPrefix+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to acquire lock %q: %w", key, err)
	}
	if !acquired {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock if token still matches the stored value.
// Releasing a lock that expired or moved to another holder is not an
// error; the delete simply does not happen.
func (l *RedisPublishLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.keyPrefix + key}, token).Err(); err != nil {
		return fmt.Errorf("failed to release lock %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying Redis client
func (l *RedisPublishLock) Close() error {
	return l.client.Close()
}

// Ensure RedisPublishLock implements the publish lock port
var _ appintegration.PublishLock = (*RedisPublishLock)(nil)
