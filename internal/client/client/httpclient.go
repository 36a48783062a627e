package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/foodlink/internal/client/tokenstore"
	"github.com/dmitrijs2005/foodlink/internal/common"
	"github.com/dmitrijs2005/foodlink/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	TokenPath        = "api/token/"
	TokenRefreshPath = "api/token/refresh/"
	RegisterPath     = "api/register/"
)

// HTTPClient talks JSON to the backend REST API. Every request carries the
// default headers; 401 responses go through refreshTransport.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	bare    *http.Client
	tokens  tokenstore.Store
	log     logging.Logger

	mu        sync.RWMutex
	auth      string
	onExpire  func(ctx context.Context, cause error)
	onRefresh func(ctx context.Context, access string)

	refreshGroup singleflight.Group
}

type Option func(*HTTPClient)

// WithTransport replaces the underlying round tripper (default
// http.DefaultTransport). The refresh middleware is layered on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.bare = &http.Client{Transport: rt}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// NewHTTPClient builds a client for baseURL. tokens is the persisted token
// pair read and written by the refresh middleware.
func NewHTTPClient(baseURL string, tokens tokenstore.Store, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &HTTPClient{
		baseURL: u,
		bare:    &http.Client{Transport: http.DefaultTransport},
		tokens:  tokens,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}

	c.http = &http.Client{Transport: &refreshTransport{next: c.bare.Transport, client: c}}
	return c, nil
}

func (c *HTTPClient) SetAuthorization(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = common.BearerValue(token)
}

func (c *HTTPClient) ClearAuthorization() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = ""
}

func (c *HTTPClient) Authorization() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

func (c *HTTPClient) OnSessionExpired(fn func(ctx context.Context, cause error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpire = fn
}

func (c *HTTPClient) OnTokenRefreshed(fn func(ctx context.Context, access string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRefresh = fn
}

func (c *HTTPClient) resolve(path string) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		// bytes.Reader lets net/http populate GetBody, which the refresh
		// middleware needs to replay the request.
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if auth := c.Authorization(); auth != "" {
		req.Header.Set(common.AuthorizationHeaderName, auth)
	}
	return req, nil
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.send(c.http, req, out)
}

func (c *HTTPClient) send(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug(req.Context(), "request failed",
			"method", req.Method, "url", req.URL.Path, "status", resp.StatusCode,
			"request_id", req.Header.Get(common.RequestIDHeaderName))
		return &Error{StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapTransportError keeps refresh failures and cancellations recognisable
// and classifies everything else as the server being unreachable.
func mapTransportError(err error) error {
	switch {
	case errors.Is(err, ErrRefreshFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
