package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRedis(ctx context.Context, addr string, ttl time.Duration) (Store, error) {
	c := redis.NewClient(&redis.Options{Addr: addr})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &redisStore{c: c, ttl: ttl}, nil
}

// each session is one hash: travelease:sess:<sid> -> {key: value}
func hashKey(sid string) string { return "travelease:sess:" + sid }

func (r *redisStore) Get(ctx context.Context, sid, key string) ([]byte, error) {
	b, err := r.c.HGet(ctx, hashKey(sid), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return b, err
}

func (r *redisStore) Set(ctx context.Context, sid, key string, value []byte) error {
	pipe := r.c.TxPipeline()
	pipe.HSet(ctx, hashKey(sid), key, value)
	if r.ttl > 0 && sid != SharedSession {
		pipe.Expire(ctx, hashKey(sid), r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.c.HDel(ctx, hashKey(sid), keys...).Err()
}

func (r *redisStore) Clear(ctx context.Context, sid string) error {
	return r.c.Del(ctx, hashKey(sid)).Err()
}

func (r *redisStore) Close() error { return r.c.Close() }
