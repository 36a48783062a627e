package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrNoRefreshToken = errors.New("no refresh token")
)

// Error is a non-2xx response. Body keeps the raw JSON payload so callers
// can display server validation errors verbatim.
type Error struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *Error) Error() string {
	msg := e.Message("")
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
}

// Is maps status codes onto the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode == http.StatusBadGateway ||
			e.StatusCode == http.StatusServiceUnavailable ||
			e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}

func (e *Error) object() map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &m); err != nil {
		return nil
	}
	return m
}

// Detail returns the "detail" field, or "".
func (e *Error) Detail() string {
	var s string
	if raw, ok := e.object()["detail"]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// NonFieldErrors returns the "non_field_errors" list, or nil.
func (e *Error) NonFieldErrors() []string {
	raw, ok := e.object()["non_field_errors"]
	if !ok {
		return nil
	}
	return stringList(raw)
}

// FieldErrors returns per-field messages, excluding detail and
// non_field_errors. Returns nil when the body is not a JSON object.
func (e *Error) FieldErrors() map[string][]string {
	obj := e.object()
	if obj == nil {
		return nil
	}
	out := make(map[string][]string)
	for k, raw := range obj {
		if k == "detail" || k == "non_field_errors" {
			continue
		}
		if msgs := stringList(raw); len(msgs) > 0 {
			out[k] = msgs
		}
	}
	return out
}

// Message picks the most specific human-readable message: detail, then the
// first non-field error, then fallback.
func (e *Error) Message(fallback string) string {
	if d := e.Detail(); d != "" {
		return d
	}
	if nfe := e.NonFieldErrors(); len(nfe) > 0 {
		return nfe[0]
	}
	return fallback
}

// Summary flattens FieldErrors into "field: msg" lines, sorted by field.
func (e *Error) Summary() []string {
	fe := e.FieldErrors()
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, k+": "+strings.Join(fe[k], " "))
	}
	return lines
}

// Message returns the server message carried by err, or fallback when err
// does not wrap an *Error or the server sent nothing usable.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}

func stringList(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return []string{s}
	}
	return nil
}
