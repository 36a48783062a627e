package common

import "errors"

var (
	// ErrNotFound is returned by local stores when a key is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a form fails client-side validation
	// before anything is sent to the server.
	ErrInvalidInput = errors.New("invalid input")
)
