// Package session owns the client's authentication state: the current
// access token, the identity decoded from it and whether startup restore is
// still running. One Manager lives for the whole process.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/tokenstore"
	"github.com/dmitrijs2005/foodlink/internal/logging"
)

const (
	loginFallback        = "Login failed"
	registrationFallback = "Registration failed"
)

type Manager struct {
	client client.Client
	tokens tokenstore.Store
	log    logging.Logger

	mu           sync.RWMutex
	state        State
	access       string
	identity     claims.Identity
	onSessionEnd []func(ctx context.Context)
}

// NewManager wires the manager to c. An unrecoverable refresh failure
// reported by c ends the session.
func NewManager(c client.Client, tokens tokenstore.Store, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	m := &Manager{client: c, tokens: tokens, log: log}
	c.OnSessionExpired(m.expired)
	c.OnTokenRefreshed(m.refreshed)
	return m
}

// OnSessionEnd registers fn to run whenever the current user's session
// ends. Besides logout and forced expiry, that includes a login or a token
// refresh that replaces the user.
func (m *Manager) OnSessionEnd(fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSessionEnd = append(m.onSessionEnd, fn)
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) Loading() bool {
	return m.State() == Loading
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// Identity returns the current user. ok is false unless authenticated.
func (m *Manager) Identity() (claims.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Authenticated {
		return claims.Identity{}, false
	}
	return m.identity, true
}

// AccessToken returns the in-memory access token, "" when logged out.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// Require returns the current identity or ErrNotAuthenticated.
func (m *Manager) Require() (claims.Identity, error) {
	id, ok := m.Identity()
	if !ok {
		return claims.Identity{}, ErrNotAuthenticated
	}
	return id, nil
}

// RequireRole is Require restricted to the given roles.
func (m *Manager) RequireRole(roles ...claims.Role) (claims.Identity, error) {
	id, err := m.Require()
	if err != nil {
		return id, err
	}
	if !slices.Contains(roles, id.Role) {
		return id, fmt.Errorf("%w: %s", ErrWrongRole, id.Role)
	}
	return id, nil
}

// Initialize restores a session from the persisted access token. A token
// whose claims cannot be decoded ends in a logout. The returned error is
// reserved for storage failures.
func (m *Manager) Initialize(ctx context.Context) error {
	access, err := m.tokens.AccessToken(ctx)
	if err != nil {
		m.setUnauthenticated()
		return fmt.Errorf("read access token: %w", err)
	}
	if access == "" {
		m.setUnauthenticated()
		return nil
	}

	m.mu.Lock()
	m.state = Loading
	m.access = access
	m.mu.Unlock()

	m.client.SetAuthorization(access)

	id, err := claims.DecodeUntrusted(access)
	if err != nil {
		m.log.Warn(ctx, "stored access token is unusable, logging out", "error", err)
		return m.Logout(ctx)
	}

	m.mu.Lock()
	m.identity = id
	m.state = Authenticated
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "username", id.Username, "role", id.Role)
	return nil
}

// Login exchanges credentials for a token pair. Nothing is persisted or
// installed unless the issued access token decodes.
func (m *Manager) Login(ctx context.Context, username string, password []byte) Result {
	req := loginRequest{Username: username, Password: string(password)}

	var pair tokenPair
	err := m.client.Do(client.WithoutRefresh(ctx), http.MethodPost, client.TokenPath, req, &pair)
	if err != nil {
		m.log.Info(ctx, "login rejected", "username", username, "error", err)
		return failure(err, loginFallback, false)
	}

	id, err := claims.DecodeUntrusted(pair.Access)
	if err != nil {
		m.log.Warn(ctx, "login returned an unusable access token", "error", err)
		return Result{Message: loginFallback}
	}

	if err := m.tokens.Save(ctx, pair.Access, pair.Refresh); err != nil {
		m.log.Error(ctx, "failed to persist tokens", "error", err)
		return Result{Message: loginFallback}
	}
	m.client.SetAuthorization(pair.Access)

	if m.State() != Unauthenticated {
		m.runSessionEndHooks(ctx)
	}

	m.mu.Lock()
	m.access = pair.Access
	m.identity = id
	m.state = Authenticated
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "username", id.Username, "role", id.Role)
	return Result{Success: true}
}

// Register creates an account. It does not log in.
func (m *Manager) Register(ctx context.Context, in RegisterInput) Result {
	err := m.client.Do(client.WithoutRefresh(ctx), http.MethodPost, client.RegisterPath, in, nil)
	if err != nil {
		m.log.Info(ctx, "registration rejected", "username", in.Username, "error", err)
		return failure(err, registrationFallback, true)
	}
	return Result{Success: true}
}

// Logout drops all session state. It is safe to call repeatedly; the
// in-memory state is reset even when clearing the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.tokens.Clear(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to clear tokens", "error", err)
		err = fmt.Errorf("clear tokens: %w", err)
	}
	m.client.ClearAuthorization()
	m.reset(ctx)
	return err
}

// expired runs when the HTTP client gives up on refreshing. The store and
// default authorization are already cleared by then.
func (m *Manager) expired(ctx context.Context, cause error) {
	m.log.Warn(ctx, "session expired", "error", cause)
	m.reset(ctx)
}

// refreshed re-derives the identity from an access token the HTTP client
// obtained by refreshing. A token that does not decode ends the session.
func (m *Manager) refreshed(ctx context.Context, access string) {
	id, err := claims.DecodeUntrusted(access)
	if err != nil {
		m.log.Warn(ctx, "refreshed access token is unusable, logging out", "error", err)
		_ = m.Logout(ctx)
		return
	}

	m.mu.Lock()
	if m.state == Unauthenticated {
		m.mu.Unlock()
		return
	}
	switched := m.identity.UserID != id.UserID
	m.access = access
	m.identity = id
	m.state = Authenticated
	m.mu.Unlock()

	if switched {
		m.log.Warn(ctx, "refreshed token belongs to another user", "username", id.Username)
		m.runSessionEndHooks(ctx)
	}
}

func (m *Manager) reset(ctx context.Context) {
	m.setUnauthenticated()
	m.runSessionEndHooks(ctx)
}

func (m *Manager) runSessionEndHooks(ctx context.Context) {
	m.mu.RLock()
	hooks := slices.Clone(m.onSessionEnd)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Unauthenticated
	m.access = ""
	m.identity = claims.Identity{}
}

// failure builds a failed Result from err. Login reports only the server's
// detail; registration also carries the raw body for field errors.
func failure(err error, fallback string, withPayload bool) Result {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return Result{Message: fallback}
	}

	r := Result{Message: fallback}
	if withPayload {
		r.Message = apiErr.Message(fallback)
		if len(apiErr.Body) > 0 {
			r.Payload = apiErr.Body
		}
		return r
	}
	if d := apiErr.Detail(); d != "" {
		r.Message = d
	}
	return r
}
