package service

import "errors"

// Failure kinds surfaced to callers. Handlers match them with errors.Is;
// messages carry the specific room or field.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrNoCapacity   = errors.New("no free room available")
	ErrInvalidInput = errors.New("invalid input")
)
