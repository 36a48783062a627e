package client

import (
	"context"
)

// Client is the transport used by the session manager and API services.
type Client interface {
	// Do sends a JSON request to path (relative to the base URL). body, when
	// non-nil, is JSON-encoded; out, when non-nil, receives the decoded
	// response. Non-2xx responses are returned as *Error.
	Do(ctx context.Context, method, path string, body, out any) error

	// SetAuthorization installs token as the default bearer credential.
	SetAuthorization(token string)
	// ClearAuthorization removes the default credential.
	ClearAuthorization()
	// Authorization returns the current default Authorization header value.
	Authorization() string

	// OnSessionExpired registers the hook run after an unrecoverable
	// refresh failure, once the persisted tokens have been cleared.
	OnSessionExpired(fn func(ctx context.Context, cause error))
	// OnTokenRefreshed registers the hook run after a refreshed access token
	// has been persisted and installed.
	OnTokenRefreshed(fn func(ctx context.Context, access string))
}
