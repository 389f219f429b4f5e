package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:v1:"

// Store maps opaque session tokens to administrator identifiers. Get
// returns an empty id when the token is unknown or expired.
type Store interface {
	Put(ctx context.Context, token, adminID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps session state in Redis so it survives restarts and is
// shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put records the session with the given time to live.
func (s *RedisStore) Put(ctx context.Context, token, adminID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionPrefix+token, adminID, ttl).Err()
}

// Get resolves the token to an administrator id.
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	id, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Delete revokes the session. Revoking an absent token is a no-op.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionPrefix+token).Err()
}

type memoryEntry struct {
	adminID string
	expires time.Time
}

// MemoryStore holds sessions in process memory for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

// NewMemoryStore builds an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

// Put records the session with the given time to live.
func (s *MemoryStore) Put(_ context.Context, token, adminID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{adminID: adminID, expires: time.Now().Add(ttl)}
	return nil
}

// Get resolves the token to an administrator id.
func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[token]
	if !ok || time.Now().After(entry.expires) {
		return "", nil
	}
	return entry.adminID, nil
}

// Delete revokes the session.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
