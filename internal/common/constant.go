// Package common contains shared constants and sentinel errors used across
// the receipt service.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted authorization scheme.
	BearerScheme = "Bearer"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-Id"
)
