package errors

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer of the quiz server. Package level errors
// in auth, token, sessions and questions wrap one of these so the HTTP layer
// can map any failure with a single errors.Is switch.
var (
	// Input errors (400)
	ErrValidation  = errors.New("validation failed")
	ErrInvalidJSON = errors.New("invalid JSON payload")

	// Authentication errors (401)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// Lookup errors (404)
	ErrNotFound = errors.New("not found")

	// Collaborator errors (500/502)
	ErrUpstream = errors.New("upstream failure")

	// Throttling (429)
	ErrRateLimited = errors.New("rate limited")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Kind returns an error that matches both kind and cause with errors.Is.
// The message reads "<kind>: <cause>".
func Kind(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &kindError{kind: kind, cause: cause}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
