package constant

import "time"

const (
	// AuthorizationRealm is the authorization realm (prefix of value
	// in the `Authorization` header) for both access tokens and the admin key.
	AuthorizationRealm = "Bearer"

	// AccessTokenLength is the length of the opaque access token issued at registration.
	AccessTokenLength = 48

	// AccountCacheLifetime is how long an account resolved from an access token stays cached.
	AccountCacheLifetime = time.Hour * 24

	DefaultBcryptCost = 12
)
