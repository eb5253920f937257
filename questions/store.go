package questions

import (
	"context"
	"fmt"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
)

var (
	// ErrNotFound is returned when no question has the requested id.
	ErrNotFound = fmt.Errorf("question %w", apperrors.ErrNotFound)

	// ErrUpstream wraps any backend failure.
	ErrUpstream = fmt.Errorf("question store: %w", apperrors.ErrUpstream)
)

// Store is the question persistence capability. Implementations bound every
// call by the caller's context.
type Store interface {
	List(ctx context.Context) ([]Question, error)
	Create(ctx context.Context, in Input) (Question, error)
	Update(ctx context.Context, id string, in Input) (Question, error)
	Delete(ctx context.Context, id string) error
}

// Upstream wraps cause as an ErrUpstream.
func Upstream(cause error) error {
	return apperrors.Kind(ErrUpstream, cause)
}
