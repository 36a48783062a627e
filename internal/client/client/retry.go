package client

import "context"

type retryKey struct{}

// retryState travels with a request through the refresh middleware.
// retried is set before the one allowed refresh-and-retry.
type retryState struct {
	retried bool
}

func retryStateFrom(ctx context.Context) *retryState {
	s, _ := ctx.Value(retryKey{}).(*retryState)
	return s
}

func withRetryState(ctx context.Context, s *retryState) context.Context {
	return context.WithValue(ctx, retryKey{}, s)
}

// WithoutRefresh marks requests made with ctx as already retried, so a 401
// is returned to the caller as is. Used for credential endpoints, where
// 401 means bad credentials rather than an expired access token.
func WithoutRefresh(ctx context.Context) context.Context {
	return withRetryState(ctx, &retryState{retried: true})
}
