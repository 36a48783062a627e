// Package claims reads identity fields out of an access token.
//
// DecodeUntrusted never checks the signature. Its result is only fit for
// display and client-side routing; the backend authorizes every request.
package claims

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingClaim   = errors.New("missing claim")
)

type Role string

const (
	RoleDonor Role = "DONOR"
	RoleNGO   Role = "NGO"
	RoleAdmin Role = "ADMIN"
)

// Identity is who the access token says the user is.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}

// tokenClaims mirrors the payload issued by the backend. UserID accepts both
// numeric and quoted-numeric encodings.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   json.Number `json:"user_id"`
	Username string      `json:"username"`
	Role     Role        `json:"role"`
}

var parser = jwt.NewParser()

// DecodeUntrusted extracts the Identity from token without verifying it.
// Any structural problem or missing field is an error; callers treat that
// as fatal to the session.
func DecodeUntrusted(token string) (Identity, error) {
	var c tokenClaims
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if c.UserID == "" {
		return Identity{}, fmt.Errorf("%w: user_id", ErrMissingClaim)
	}
	id, err := strconv.ParseInt(c.UserID.String(), 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: user_id %q is not an integer", ErrMalformedToken, c.UserID)
	}
	if c.Username == "" {
		return Identity{}, fmt.Errorf("%w: username", ErrMissingClaim)
	}
	if c.Role == "" {
		return Identity{}, fmt.Errorf("%w: role", ErrMissingClaim)
	}

	return Identity{UserID: id, Username: c.Username, Role: c.Role}, nil
}
