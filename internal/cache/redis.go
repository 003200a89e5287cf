// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cacher backed by a Redis server, for deployments running more
// than one front-end instance.
type Redis struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	URL        string // e.g. redis://localhost:6379/0
	Prefix     string // prepended to every key
	DefaultTTL time.Duration
}

// NewRedis creates a Redis cache and verifies the connection.
func NewRedis(opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Minute
	}
	return &Redis{
		client:     client,
		prefix:     opts.Prefix,
		defaultTTL: opts.DefaultTTL,
	}, nil
}

// Get implements Cacher.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.misses.Add(1)
			return nil, ErrMiss
		}
		return nil, err
	}
	r.hits.Add(1)
	return data, nil
}

// Set implements Cacher.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	r.sets.Add(1)
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

// Delete implements Cacher.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	if r.closed.CompareAndSwap(false, true) {
		return r.client.Close()
	}
	return nil
}

// Stats implements StatsProvider. Item count is not tracked for Redis.
func (r *Redis) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Sets:   r.sets.Load(),
	}
}

var (
	_ Cacher        = (*Redis)(nil)
	_ StatsProvider = (*Redis)(nil)
)
