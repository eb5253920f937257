package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-quiz-server/sessions"
	"github.com/jrsteele09/go-quiz-server/sessions/redisrepo"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testPrincipal = sessions.Principal{UserID: "user1", Email: "test@example.com", Name: "Test User"}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func setup(t *testing.T, ttl time.Duration, opts ...redisrepo.Option) (*redisrepo.Registry, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	reg := redisrepo.New(client, ttl, opts...)
	t.Cleanup(func() { _ = reg.Close() })
	return reg, mr
}

func TestRedisRegistryLifecycle(t *testing.T) {
	ctx := context.Background()
	reg, mr := setup(t, time.Minute)

	s, err := reg.Create(ctx, testPrincipal)
	require.NoError(t, err)
	require.True(t, mr.Exists("session:"+s.ID))
	require.Equal(t, time.Minute, mr.TTL("session:"+s.ID))

	got, err := reg.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.UserID, got.UserID)
	require.Equal(t, s.Email, got.Email)
	require.Equal(t, s.Name, got.Name)

	require.NoError(t, reg.Delete(ctx, s.ID))
	require.NoError(t, reg.Delete(ctx, s.ID))

	_, err = reg.Get(ctx, s.ID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestRedisRegistryUnknownID(t *testing.T) {
	reg, _ := setup(t, time.Minute)
	_, err := reg.Get(context.Background(), "never-created")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestRedisRegistryKeyTTLExpiry(t *testing.T) {
	ctx := context.Background()
	reg, mr := setup(t, time.Minute)

	s, err := reg.Create(ctx, testPrincipal)
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)
	_, err = reg.Get(ctx, s.ID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestRedisRegistryLazyExpiry(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	reg, mr := setup(t, time.Minute, redisrepo.WithNowTime(c.now))

	s, err := reg.Create(ctx, testPrincipal)
	require.NoError(t, err)

	// The key is still in Redis, but the record itself has expired.
	c.t = c.t.Add(time.Minute)
	_, err = reg.Get(ctx, s.ID)
	require.ErrorIs(t, err, sessions.ErrNotFound)
	require.False(t, mr.Exists("session:"+s.ID))
}

func TestRedisRegistryBackendDown(t *testing.T) {
	ctx := context.Background()
	reg, mr := setup(t, time.Minute)
	mr.Close()

	_, err := reg.Create(ctx, testPrincipal)
	require.Error(t, err)
	_, err = reg.Get(ctx, "any")
	require.Error(t, err)
	require.NotErrorIs(t, err, sessions.ErrNotFound)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	reg, err := redisrepo.Dial(context.Background(), mr.Addr(), "", time.Minute)
	require.NoError(t, err)
	require.NoError(t, reg.Close())
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := redisrepo.Dial(ctx, "127.0.0.1:1", "", time.Minute)
	require.Error(t, err)
}
