// Package ratestore keeps Fiber limiter counters in Redis so every instance
// behind the load balancer shares one budget per client.
package ratestore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const prefix = "installbay:limiter:"

// Store implements fiber.Storage.
type Store struct {
	rdb     redis.UniversalClient
	timeout time.Duration
}

func New(rdb redis.UniversalClient) *Store {
	return &Store{rdb: rdb, timeout: time.Second}
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns nil, nil for a missing key, as fiber.Storage requires.
func (s *Store) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	b, err := s.rdb.Get(ctx, prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *Store) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Set(ctx, prefix+key, val, exp).Err()
}

func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	return s.rdb.Del(ctx, prefix+key).Err()
}

// Reset drops every limiter key, leaving the rest of the database alone.
func (s *Store) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *Store) Close() error { return s.rdb.Close() }
