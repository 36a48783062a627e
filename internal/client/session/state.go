package session

import (
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/client"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrWrongRole        = errors.New("operation not available for this role")
)

type State int

const (
	Unauthenticated State = iota
	Loading
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Result reports the outcome of Login and Register. Message is meant for
// display. Payload holds the server's error body when there was one.
type Result struct {
	Success bool
	Message string
	Payload json.RawMessage
}

// FieldErrors returns per-field validation messages from Payload.
func (r Result) FieldErrors() map[string][]string {
	if len(r.Payload) == 0 {
		return nil
	}
	return (&client.Error{Body: r.Payload}).FieldErrors()
}

// Summary lists the field errors as "field: message" lines.
func (r Result) Summary() []string {
	if len(r.Payload) == 0 {
		return nil
	}
	return (&client.Error{Body: r.Payload}).Summary()
}

// RegisterInput is the account form.
type RegisterInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     claims.Role `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
