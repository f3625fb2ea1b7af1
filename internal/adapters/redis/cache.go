package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"reviewpulse/internal/adapters/observability"
)

// Cache is a JSON-over-Redis implementation of domain.Cache. Values are
// marshaled on Set and unmarshaled into the caller's destination on Get.
type Cache struct {
	rdb *goredis.Client
}

func New(addr, pass string, db int) (*Cache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: pass,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb}, nil
}

// Get reports (false, nil) on a miss so callers fall through to the
// source without branching on redis.Nil.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		observability.ObserveCache("miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveCache("error")
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		observability.ObserveCache("error")
		return false, err
	}
	observability.ObserveCache("hit")
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, raw, time.Duration(ttlSec)*time.Second).Err(); err != nil {
		observability.ObserveCache("error")
		return err
	}
	observability.ObserveCache("set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		observability.ObserveCache("error")
		return err
	}
	observability.ObserveCache("del")
	return nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
