package cache

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("cache: key not found")

// client is shared by every Set. It is populated once by Populate during
// application start, before any cache is read.
var client *redis.Client

func Populate(c *redis.Client) {
	client = c
}
