package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for sessions
const redisSessionPrefix = "session:"

// RedisSessionStore keeps sessions in Redis so several instances can
// share one conversation table. Expiry rides on Redis key TTLs, so
// Expired never reports phones to the sweeper; stale keys vanish on
// their own.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, phone string) (*Session, error) {
	val, err := s.client.Get(ctx, s.key(phone)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *Session) error {
	val, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.Phone), val, ttlUntil(session.ExpiresAt)).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, s.key(phone)).Err()
}

func (s *RedisSessionStore) Touch(ctx context.Context, phone string, expiresAt time.Time) error {
	session, err := s.Get(ctx, phone)
	if err != nil {
		return err
	}
	session.ExpiresAt = expiresAt
	return s.Put(ctx, session)
}

func (s *RedisSessionStore) Expired(ctx context.Context, now time.Time) ([]string, error) {
	return nil, nil
}

func (s *RedisSessionStore) key(phone string) string {
	return redisSessionPrefix + phone
}

// ttlUntil converts an absolute expiry into a Redis TTL, clamped so an
// already-stale session still gets a short-lived key instead of a
// non-expiring one.
func ttlUntil(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}
