package fiberstore

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is a fiber.Storage backed by plain redis keys under Prefix, so that
// every entry carries its own expiry. It backs the rate limiters and the
// idempotency middleware, which both need state shared across instances.
type Redis struct {
	Client *redis.Client
	Prefix string
}

// Redis implements fiber.Storage
var _ fiber.Storage = &Redis{}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		Client: client,
		Prefix: prefix + ":",
	}
}

// Get implements fiber.Storage. A missing key yields nil, nil as fiber expects.
func (r *Redis) Get(key string) ([]byte, error) {
	val, err := r.Client.Get(context.Background(), r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set implements fiber.Storage
func (r *Redis) Set(key string, val []byte, exp time.Duration) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	return r.Client.Set(context.Background(), r.Prefix+key, val, exp).Err()
}

// Delete implements fiber.Storage
func (r *Redis) Delete(key string) error {
	return r.Client.Del(context.Background(), r.Prefix+key).Err()
}

// Reset implements fiber.Storage
func (r *Redis) Reset() error {
	ctx := context.Background()
	iter := r.Client.Scan(ctx, 0, r.Prefix+"*", 1000).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close implements fiber.Storage. The client is owned by the fx graph and
// closed there, so this is a no-op.
func (r *Redis) Close() error {
	return nil
}
