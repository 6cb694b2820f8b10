package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Remote client failure taxonomy. The provider wraps every fetch error
	// in exactly one of these so callers can classify without inspecting
	// transport details.
	ErrProviderTimeout         = errors.New("score provider timed out")
	ErrProviderNetwork         = errors.New("score provider unreachable")
	ErrProviderInvalidResponse = errors.New("score provider returned an invalid response")
)
