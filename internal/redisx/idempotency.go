package redisx

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const pendingMarker = "pending"

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// IdempotencyStore remembers which appointment a booking request created.
type IdempotencyStore struct {
	rdb redis.Cmdable
}

func NewIdempotencyStore(rdb redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

// Claim reserves key for customerID. When the key is already taken it
// returns the appointment id stored there, or 0 while the first request has
// not finished.
func (s *IdempotencyStore) Claim(ctx context.Context, customerID uint, key string) (claimed bool, existingID uint, err error) {
	k := fmt.Sprintf(KeyIdemBooking, customerID, key)

	ok, err := s.rdb.SetNX(ctx, k, pendingMarker, TTLPending).Result()
	if err != nil {
		return false, 0, err
	}
	if ok {
		return true, 0, nil
	}

	v, err := s.rdb.Get(ctx, k).Result()
	if err == redis.Nil {
		// expired between SETNX and GET
		return s.Claim(ctx, customerID, key)
	}
	if err != nil {
		return false, 0, err
	}
	if v == pendingMarker {
		return false, 0, nil
	}

	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return false, 0, fmt.Errorf("idempotency value %q: %w", v, err)
	}
	return false, uint(id), nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, customerID uint, key string, appointmentID uint) error {
	k := fmt.Sprintf(KeyIdemBooking, customerID, key)
	return s.rdb.Set(ctx, k, strconv.FormatUint(uint64(appointmentID), 10), TTLIdempotency).Err()
}

// Release drops a claim so a failed request can be retried with the same
// key.
func (s *IdempotencyStore) Release(ctx context.Context, customerID uint, key string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(KeyIdemBooking, customerID, key)).Err()
}
