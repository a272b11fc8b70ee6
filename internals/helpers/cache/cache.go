package cache

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key does not exist or caching is disabled.
var ErrMiss = errors.New("cache: miss")

// Service is a thin key-value wrapper over Redis. A nil client disables
// caching entirely: every Get misses and writes are no-ops, so the app and
// the tests run without a Redis instance.
type Service struct {
	rdb *redis.Client
}

// NewFromEnv connects using REDIS_ADDR / REDIS_PASSWORD / REDIS_DB.
// Empty REDIS_ADDR means caching is disabled.
func NewFromEnv() *Service {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⚠️ REDIS_ADDR not set, cache disabled")
		return &Service{}
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
	return &Service{rdb: rdb}
}

func New(rdb *redis.Client) *Service { return &Service{rdb: rdb} }

func (s *Service) Enabled() bool { return s != nil && s.rdb != nil }

func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if !s.Enabled() {
		return "", ErrMiss
	}
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return v, err
}

func (s *Service) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching the glob pattern via SCAN,
// never KEYS. Used to invalidate dashboard entries after an import.
func (s *Service) DeletePattern(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.rdb.Del(ctx, batch...).Err()
	}
	return nil
}
