package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by a Backend when a token has no live record.
var ErrNotFound = errors.New("session not found")

// Record is the server-held state behind one session token.
type Record struct {
	UserID int64 `json:"userId,omitempty"`
}

// Backend persists session records keyed by opaque token.
type Backend interface {
	Load(ctx context.Context, token string) (Record, error)
	Save(ctx context.Context, token string, rec Record, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// RedisBackend stores records as JSON under "session:<token>" with the session TTL.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func redisKey(token string) string {
	return "session:" + token
}

func (b *RedisBackend) Load(ctx context.Context, token string) (Record, error) {
	var rec Record

	raw, err := b.client.Get(ctx, redisKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("loading session: %w", err)
	}

	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("decoding session: %w", err)
	}

	return rec, nil
}

func (b *RedisBackend) Save(ctx context.Context, token string, rec Record, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := b.client.Set(ctx, redisKey(token), raw, ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, token string) error {
	return b.client.Del(ctx, redisKey(token)).Err()
}

type memoryEntry struct {
	rec       Record
	expiresAt time.Time
}

// MemoryBackend keeps records in process. Used in development and tests.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (b *MemoryBackend) Load(_ context.Context, token string) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[token]
	if !ok {
		return Record{}, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && b.now().After(entry.expiresAt) {
		delete(b.entries, token)
		return Record{}, ErrNotFound
	}

	return entry.rec, nil
}

func (b *MemoryBackend) Save(_ context.Context, token string, rec Record, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := memoryEntry{rec: rec}
	if ttl > 0 {
		entry.expiresAt = b.now().Add(ttl)
	}
	b.entries[token] = entry

	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, token)
	return nil
}

// Len reports how many records are held, expired ones included.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries)
}
