package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appintegration "github.com/vendora/backend/internal/application/integration"
)

type lockEntry struct {
	token  string
	expiry time.Time
}

// InMemoryPublishLock implements the publish advisory lock in process
// memory. Suitable for single-instance deployments and tests; use
// RedisPublishLock when running more than one process.
type InMemoryPublishLock struct {
	mu    sync.Mutex
	held  map[string]lockEntry
	clock func() time.Time
}

// NewInMemoryPublishLock creates a new in-memory lock
func NewInMemoryPublishLock() *InMemoryPublishLock {
	return &InMemoryPublishLock{
		held:  make(map[string]lockEntry),
		clock: time.Now,
	}
}

// Acquire takes the lock unless a non-expired holder exists, returning
// a token that identifies this acquisition.
func (l *InMemoryPublishLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if entry, ok := l.held[key]; ok && now.Before(entry.expiry) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = lockEntry{token: token, expiry: now.Add(ttl)}
	return token, true, nil
}

// Release drops the lock only while token still identifies the current
// holder. A release arriving after the TTL expired and another caller
// re-acquired leaves the newer holder's lock in place.
func (l *InMemoryPublishLock) Release(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.held[key]; ok && entry.token == token {
		delete(l.held, key)
	}
	return nil
}

// Ensure InMemoryPublishLock implements the publish lock port
var _ appintegration.PublishLock = (*InMemoryPublishLock)(nil)
