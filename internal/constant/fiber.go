package constant

import "time"

const (
	ContextKeyRequestID = "requestid"
	LocalsAccountKey    = "account"

	RequestIDHeader = "X-MediaWatch-Request-ID"

	IdempotencyHeader    = "X-MediaWatch-Idempotency"
	IdempotencyKeyHeader = "Idempotency-Key"

	IdempotencyKeyLengthLimit = 128

	IdempotencyLifetime = time.Hour * 24

	// IdempotencyLockExpiry bounds how long a request may hold its idempotency key.
	IdempotencyLockExpiry = time.Minute * 5

	IdempotencyRedisPrefix = "idempotency"
	RateLimitRedisPrefix   = "ratelimit"
)
