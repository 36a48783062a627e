package models

import "github.com/dmitrijs2005/foodlink/internal/common"

// inputError is a form validation failure. It matches common.ErrInvalidInput
// and keeps its own message.
type inputError struct {
	msg string
}

func invalid(msg string) error {
	return &inputError{msg: msg}
}

func (e *inputError) Error() string {
	return e.msg
}

func (e *inputError) Is(target error) bool {
	return target == common.ErrInvalidInput
}
