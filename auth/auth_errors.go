package auth

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = fmt.Errorf("auth: %w", apperrors.ErrInvalidCredentials)

	// ErrUnauthenticated is returned for missing, invalid or expired
	// credentials on an authenticated request.
	ErrUnauthenticated = fmt.Errorf("auth: %w", apperrors.ErrUnauthenticated)
)

// ValidationError carries field level messages for a rejected login payload.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrValidation }

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}
