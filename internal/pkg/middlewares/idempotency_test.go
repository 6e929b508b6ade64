package middlewares

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mediawatch.dev/backend/internal/constant"
	"mediawatch.dev/backend/internal/pkg/apierr"
)

type memoryStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (s *memoryStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memoryStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = val
	return nil
}

func (s *memoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memoryStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	return nil
}

func (s *memoryStorage) Close() error { return nil }

type idempotencyFixture struct {
	app     *fiber.App
	storage *memoryStorage
	calls   int
	held    map[string]bool
}

func newIdempotencyFixture(t *testing.T) *idempotencyFixture {
	t.Helper()
	f := &idempotencyFixture{
		storage: &memoryStorage{data: map[string][]byte{}},
		held:    map[string]bool{},
	}
	f.app = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *apierr.Error
			if errors.As(err, &e) {
				return c.Status(e.StatusCode).JSON(fiber.Map{"code": e.ErrorCode})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"code": "INTERNAL_ERROR"})
		},
	})

	guard := Idempotency(IdempotencyConfig{
		Storage: f.storage,
		Lock: func(_ context.Context, name string) (func(), error) {
			if f.held[name] {
				return nil, errors.New("lock taken")
			}
			f.held[name] = true
			return func() { delete(f.held, name) }, nil
		},
		Scope: func(c *fiber.Ctx) string { return c.Get("X-Account") },
	})

	f.app.Post("/complaints/:id/send", guard, func(c *fiber.Ctx) error {
		f.calls++
		if c.Query("fail") != "" {
			return apierr.ErrInvalidReq.Msg("Complaint already sent")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"call": f.calls, "id": c.Params("id")})
	})
	return f
}

func (f *idempotencyFixture) send(t *testing.T, target, account, key string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, target, nil)
	if account != "" {
		req.Header.Set("X-Account", account)
	}
	if key != "" {
		req.Header.Set(constant.IdempotencyKeyHeader, key)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	f := newIdempotencyFixture(t)

	first, firstBody := f.send(t, "/complaints/c1/send", "acc1", "retry-1")
	assert.Equal(t, fiber.StatusAccepted, first.StatusCode)
	assert.Equal(t, "saved", first.Header.Get(constant.IdempotencyHeader))

	second, secondBody := f.send(t, "/complaints/c1/send", "acc1", "retry-1")
	assert.Equal(t, fiber.StatusAccepted, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get(constant.IdempotencyHeader))
	assert.Equal(t, fiber.MIMEApplicationJSON, second.Header.Get(fiber.HeaderContentType))
	assert.JSONEq(t, firstBody, secondBody)
	assert.Equal(t, 1, f.calls)
}

func TestIdempotencyScopesKeys(t *testing.T) {
	f := newIdempotencyFixture(t)

	f.send(t, "/complaints/c1/send", "acc1", "k")
	_, otherAccount := f.send(t, "/complaints/c1/send", "acc2", "k")
	_, otherPath := f.send(t, "/complaints/c2/send", "acc1", "k")

	assert.Equal(t, 3, f.calls)
	assert.Equal(t, int64(2), gjson.Get(otherAccount, "call").Int())
	assert.Equal(t, "c2", gjson.Get(otherPath, "id").String())
}

func TestIdempotencyPassesThrough(t *testing.T) {
	f := newIdempotencyFixture(t)

	// no key
	f.send(t, "/complaints/c1/send", "acc1", "")
	f.send(t, "/complaints/c1/send", "acc1", "")
	// no caller to scope the key to
	f.send(t, "/complaints/c1/send", "", "k")
	f.send(t, "/complaints/c1/send", "", "k")

	assert.Equal(t, 4, f.calls)
	assert.Empty(t, f.storage.data)
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	f := newIdempotencyFixture(t)

	resp, body := f.send(t, "/complaints/c1/send?fail=1", "acc1", "k")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apierr.CodeInvalidRequest, gjson.Get(body, "code").String())
	assert.Empty(t, f.storage.data)

	resp, _ = f.send(t, "/complaints/c1/send", "acc1", "k")
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	assert.Equal(t, 2, f.calls)
	assert.Empty(t, f.held, "lock must be released after each request")
}

func TestIdempotencyRejectsInvalidKey(t *testing.T) {
	f := newIdempotencyFixture(t)

	resp, body := f.send(t, "/complaints/c1/send", "acc1", "has space")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apierr.CodeInvalidRequest, gjson.Get(body, "code").String())
	assert.Zero(t, f.calls)
}

func TestIdempotencyConflictsWhileInFlight(t *testing.T) {
	f := newIdempotencyFixture(t)

	// every lock is taken, as with a duplicate arriving while the first request still runs
	lockAll := Idempotency(IdempotencyConfig{
		Storage: f.storage,
		Lock: func(context.Context, string) (func(), error) {
			return nil, errors.New("lock taken")
		},
		Scope: func(*fiber.Ctx) string { return "acc1" },
	})
	f.app.Post("/generate-letter", lockAll, func(c *fiber.Ctx) error {
		f.calls++
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, body := f.send(t, "/generate-letter", "acc1", "k")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IDEMPOTENCY_KEY_IN_FLIGHT", gjson.Get(body, "code").String())
	assert.Zero(t, f.calls)
}
