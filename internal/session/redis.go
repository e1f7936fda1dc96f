package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/sekolah-console/internal/config"
)

// RedisStore keeps records in Redis so sessions survive console restarts and
// are shared between console replicas.
type RedisStore struct {
	rdb    *redis.Client
	maxAge time.Duration
}

// NewRedisStore creates a RedisStore. maxAge caps how long a record lives.
func NewRedisStore(rdb *redis.Client, maxAge time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, maxAge: maxAge}
}

func (s *RedisStore) Load(ctx context.Context, sid string) (*Record, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(sid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := TTLFor(rec.Token, s.maxAge, time.Now())
	if err := s.rdb.Set(ctx, config.CacheKey.SessionKey(sid), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, config.CacheKey.SessionKey(sid)).Err()
}

// TTLFor returns how long a record holding token should be kept: until the
// token's exp claim when it is a JWT expiring before maxAge, else maxAge.
// The signature is not verified; the backend remains the only authority on
// token validity.
func TTLFor(token string, maxAge time.Duration, now time.Time) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return maxAge
	}
	left := claims.ExpiresAt.Sub(now)
	if left <= 0 {
		// Keep expired tokens briefly; the next backend 401 clears them.
		return time.Minute
	}
	if left < maxAge {
		return left
	}
	return maxAge
}
