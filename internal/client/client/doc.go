// Package client is the HTTP layer of the FoodLink client.
//
// # Overview
//
// HTTPClient sends JSON requests to the backend REST API with a fixed base
// URL, JSON content-type headers, a per-request X-Request-ID and a mutable
// default bearer credential installed by the session manager.
//
// # Token refresh
//
// Responses pass through a round-tripper middleware. The first 401 of a
// request triggers a refresh against /api/token/refresh/ using the persisted
// refresh token; on success the new access token is persisted, installed as
// the default credential and handed to the OnTokenRefreshed hook, and the
// request is replayed once with it. If the hook removes the credential the
// replay is abandoned with ErrRefreshFailed. The one-retry flag lives in a
// request-scoped context value, so a replayed request that is rejected again
// is returned to the caller as is.
//
// Refreshes are single-flight: concurrent 401s share one call to the
// refresh endpoint. A 401 for a token that has already been replaced is
// retried with the current token without refreshing again.
//
// When refresh fails the persisted tokens are cleared, the default
// credential is removed, the OnSessionExpired hook runs, and the caller gets
// an error matching ErrRefreshFailed.
//
// # Error Handling
//
// Non-2xx responses are returned as *Error, which keeps the raw JSON body and
// exposes Detail, NonFieldErrors, FieldErrors and Message. *Error also
// matches the sentinels ErrUnauthorized, ErrForbidden, ErrNotFound and
// ErrUnavailable with errors.Is. Transport failures wrap ErrUnavailable.
package client
