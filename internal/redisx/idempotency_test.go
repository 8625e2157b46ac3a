package redisx

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis implements the handful of commands the store uses.
type memRedis struct {
	redis.Cmdable
	data map[string]string
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}}
}

func (m *memRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *memRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestIdempotencyStore_ClaimCompleteReplay(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(newMemRedis())

	claimed, id, err := s.Claim(ctx, 1, "abc")
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Zero(t, id)

	claimed, id, err = s.Claim(ctx, 1, "abc")
	require.NoError(t, err)
	assert.False(t, claimed, "second claim while pending")
	assert.Zero(t, id)

	require.NoError(t, s.Complete(ctx, 1, "abc", 77))

	claimed, id, err = s.Claim(ctx, 1, "abc")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, uint(77), id)
}

func TestIdempotencyStore_KeysAreScopedPerCustomer(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(newMemRedis())

	_, _, err := s.Claim(ctx, 1, "abc")
	require.NoError(t, err)

	claimed, _, err := s.Claim(ctx, 2, "abc")
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestIdempotencyStore_ReleaseAllowsRetry(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(newMemRedis())

	_, _, err := s.Claim(ctx, 1, "abc")
	require.NoError(t, err)
	require.NoError(t, s.Release(ctx, 1, "abc"))

	claimed, _, err := s.Claim(ctx, 1, "abc")
	require.NoError(t, err)
	assert.True(t, claimed)
}
