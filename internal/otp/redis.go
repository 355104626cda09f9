package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	redisPrefix = "otp:"
	// expired records are kept this long so verify can still tell an expired
	// code apart from a missing one.
	redisRetention = time.Hour
)

// RedisStore shares pending codes between API replicas.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Put(ctx context.Context, email string, rec Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode otp: %w", err)
	}

	ttl := rec.ExpiresAt.Sub(s.now()) + redisRetention
	if ttl <= 0 {
		ttl = redisRetention
	}

	return s.client.Set(ctx, redisPrefix+key(email), b, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (Record, error) {
	b, err := s.client.Get(ctx, redisPrefix+key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, fmt.Errorf("decode otp: %w", err)
	}
	return rec, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, redisPrefix+key(email)).Err()
}
