package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNotConfirmed  = errors.New("confirmation required")
	ErrHookFailed    = errors.New("hook failed")
	ErrHooksDisabled = errors.New("hooks are disabled")
)
