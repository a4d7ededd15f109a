package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidTransition marks a rejected lifecycle status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNotReady marks a template whose requirements are not fully resolved.
	ErrNotReady = errors.New("required assets missing")
)
