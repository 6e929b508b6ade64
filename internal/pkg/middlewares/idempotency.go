package middlewares

import (
	"context"
	"strconv"

	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/xxh3"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/pkg/apierr"
	"mediawatch.dev/backend/internal/pkg/flog"
	"mediawatch.dev/backend/internal/util/rekuest"
)

var ErrIdempotencyKeyInFlight = apierr.New(fiber.StatusConflict, "IDEMPOTENCY_KEY_IN_FLIGHT",
	"a request with this idempotency key is still being processed; retry once it has completed")

// KeyLock holds an exclusive lock on name until unlock is called. It fails
// instead of waiting when the lock is taken.
type KeyLock func(ctx context.Context, name string) (unlock func(), err error)

// RedsyncKeyLock locks through redis. The expiry must outlive the slowest
// letter generation.
func RedsyncKeyLock(rs *redsync.Redsync) KeyLock {
	return func(ctx context.Context, name string) (func(), error) {
		mutex := rs.NewMutex("mutex:idempotency:"+name, redsync.WithExpiry(constant.IdempotencyLockExpiry), redsync.WithTries(1))
		if err := mutex.LockContext(ctx); err != nil {
			return nil, err
		}
		return func() {
			if _, err := mutex.UnlockContext(context.Background()); err != nil {
				log.Warn().Err(err).Str("evt.name", "http.idempotency.unlock.failed").Str("lock", name).Msg("failed to release idempotency lock")
			}
		}, nil
	}
}

type IdempotencyConfig struct {
	Storage fiber.Storage
	Lock    KeyLock

	// Scope names the caller a key belongs to. Requests it returns "" for
	// pass through untouched.
	Scope func(c *fiber.Ctx) string
}

// storedResponse is what gets replayed. Both guarded routes answer JSON, so
// the content type is the only header worth keeping.
type storedResponse struct {
	StatusCode  int    `msgpack:"s"`
	ContentType string `msgpack:"t"`
	Body        []byte `msgpack:"b"`
}

// Idempotency makes creating routes safe to retry: the first successful
// response for an Idempotency-Key is stored per caller and path, and replayed
// for every later request carrying the same key. Failed requests are not
// stored and may be retried with the same key.
func Idempotency(config IdempotencyConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientKey := c.Get(constant.IdempotencyKeyHeader)
		if clientKey == "" {
			return c.Next()
		}
		if err := rekuest.Validate.Var(clientKey, "max=128,printascii,excludesall= "); err != nil {
			return apierr.ErrInvalidReq.Msg("invalid idempotency key: idempotency key can only be at most %d printable ASCII characters without spaces", constant.IdempotencyKeyLengthLimit)
		}

		scope := config.Scope(c)
		if scope == "" {
			return c.Next()
		}
		key := scope + ":" + strconv.FormatUint(xxh3.HashString(c.Path()+"|"+clientKey), 16)

		if replayed, err := replayStored(c, config.Storage, key); replayed || err != nil {
			return err
		}

		unlock, err := config.Lock(c.UserContext(), key)
		if err != nil {
			flog.WarnFrom(c, "http.idempotency.in_flight").Err(err).Str("key", key).Msg("idempotency key is locked")
			return ErrIdempotencyKeyInFlight
		}
		defer unlock()

		// the request holding the lock before us may have finished meanwhile
		if replayed, err := replayStored(c, config.Storage, key); replayed || err != nil {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		stored, err := msgpack.Marshal(storedResponse{
			StatusCode:  status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		})
		if err != nil {
			return err
		}
		// the handler already took effect, so a storage failure must not turn it into an error
		if err := config.Storage.Set(key, stored, constant.IdempotencyLifetime); err != nil {
			flog.ErrorFrom(c, "http.idempotency.save.failed").Err(err).Str("key", key).Msg("failed to store idempotent response")
			return nil
		}

		c.Set(constant.IdempotencyHeader, "saved")
		flog.DebugFrom(c, "http.idempotency.saved").Str("key", key).Msg("stored idempotent response")
		return nil
	}
}

func replayStored(c *fiber.Ctx, storage fiber.Storage, key string) (bool, error) {
	raw, err := storage.Get(key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	var stored storedResponse
	if err := msgpack.Unmarshal(raw, &stored); err != nil {
		return false, err
	}

	flog.DebugFrom(c, "http.idempotency.hit").Str("key", key).Msg("replaying stored response")
	c.Status(stored.StatusCode)
	c.Set(fiber.HeaderContentType, stored.ContentType)
	c.Set(constant.IdempotencyHeader, "hit")
	return true, c.Send(stored.Body)
}
