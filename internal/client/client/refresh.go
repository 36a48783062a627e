package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/foodlink/internal/common"
)

// refreshTransport recovers from an expired access token: on the first 401
// of a request it refreshes the token and replays the request once.
// A 401 on the replay, or on a request already marked as retried, is
// returned unchanged.
type refreshTransport struct {
	next   http.RoundTripper
	client *HTTPClient
}

func (t *refreshTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	state := retryStateFrom(req.Context())
	if state == nil {
		state = &retryState{}
		req = req.WithContext(withRetryState(req.Context(), state))
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || state.retried {
		return resp, nil
	}

	state.retried = true
	drain(resp)

	access, err := t.client.refresh(req.Context(), req.Header.Get(common.AuthorizationHeaderName))
	if err != nil {
		return nil, err
	}

	retry, err := rewind(req, access)
	if err != nil {
		return nil, err
	}
	return t.RoundTrip(retry)
}

// rewind clones req with a fresh body and the new bearer token.
func rewind(req *http.Request, access string) (*http.Request, error) {
	retry := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, errors.New("request body cannot be replayed")
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set(common.AuthorizationHeaderName, common.BearerValue(access))
	return retry, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refresh returns a usable access token. Concurrent callers share one
// in-flight refresh. failedAuth is the Authorization header the rejected
// request carried; if the default credential has moved on since, the
// current token is returned without calling the server.
func (c *HTTPClient) refresh(ctx context.Context, failedAuth string) (string, error) {
	ctx = context.WithoutCancel(ctx)

	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		if cur := c.Authorization(); cur != "" && cur != failedAuth {
			return cur[len(common.BearerPrefix):], nil
		}

		access, err := c.requestNewAccessToken(ctx)
		if err != nil {
			c.expireSession(ctx, err)
			return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
		}

		if err := c.tokens.SetAccessToken(ctx, access); err != nil {
			c.log.Warn(ctx, "failed to persist refreshed access token", "error", err)
		}
		c.SetAuthorization(access)
		c.log.Info(ctx, "access token refreshed")

		c.mu.RLock()
		hook := c.onRefresh
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx, access)
			// The hook may end the session if it cannot use the new token.
			if c.Authorization() != common.BearerValue(access) {
				return "", fmt.Errorf("%w: refreshed token was rejected", ErrRefreshFailed)
			}
		}
		return access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *HTTPClient) requestNewAccessToken(ctx context.Context) (string, error) {
	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	if refresh == "" {
		return "", ErrNoRefreshToken
	}

	req, err := c.newRequest(ctx, http.MethodPost, TokenRefreshPath, map[string]string{"refresh": refresh})
	if err != nil {
		return "", err
	}
	req.Header.Del(common.AuthorizationHeaderName)

	var out refreshResponse
	if err := c.send(c.bare, req, &out); err != nil {
		return "", err
	}
	if out.Access == "" {
		return "", errors.New("refresh response has no access token")
	}
	return out.Access, nil
}

// expireSession is the unrecoverable branch: tokens are dropped and the
// session owner is told to return to the login entry point.
func (c *HTTPClient) expireSession(ctx context.Context, cause error) {
	c.log.Warn(ctx, "token refresh failed, session expired", "error", cause)

	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear tokens", "error", err)
	}
	c.ClearAuthorization()

	c.mu.RLock()
	hook := c.onExpire
	c.mu.RUnlock()
	if hook != nil {
		hook(ctx, cause)
	}
}
