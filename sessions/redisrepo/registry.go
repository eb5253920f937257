// Package redisrepo stores sessions in Redis so several server processes
// can share them.
package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jrsteele09/go-quiz-server/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Registry = (*Registry)(nil)

const keyPrefix = "session:"

type Registry struct {
	client redis.UniversalClient
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Registry)

// WithNowTime overrides the clock used for CreatedAt, ExpiresAt and the
// lazy expiry check.
func WithNowTime(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(client redis.UniversalClient, ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{client: client, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dial connects to addr and pings it.
func Dial(ctx context.Context, addr, password string, ttl time.Duration) (*Registry, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[redisrepo Dial] ping %s: %w", addr, err)
	}
	return New(client, ttl), nil
}

func (r *Registry) key(id string) string {
	return keyPrefix + id
}

func (r *Registry) Create(ctx context.Context, p sessions.Principal) (*sessions.Session, error) {
	s, err := sessions.NewSession(p, r.now(), r.ttl)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("[redisrepo Create] marshal: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("[redisrepo Create] %w", err)
	}
	return s, nil
}

func (r *Registry) Get(ctx context.Context, id string) (*sessions.Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("[redisrepo Get] %w", err)
	}

	var s sessions.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("[redisrepo Get] unmarshal: %w", err)
	}
	// Redis TTL granularity can outlive ExpiresAt by a little.
	if s.Expired(r.now()) {
		_ = r.client.Del(ctx, r.key(id)).Err()
		return nil, sessions.ErrNotFound
	}
	return &s, nil
}

func (r *Registry) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("[redisrepo Delete] %w", err)
	}
	return nil
}

func (r *Registry) Close() error {
	return r.client.Close()
}
