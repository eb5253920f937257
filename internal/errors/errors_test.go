package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestKindMatchesKindAndCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperrors.Kind(apperrors.ErrUpstream, cause)

	require.True(t, apperrors.Is(err, apperrors.ErrUpstream))
	require.True(t, apperrors.Is(err, cause))
	require.False(t, apperrors.Is(err, apperrors.ErrNotFound))
	require.Equal(t, "upstream failure: connection refused", err.Error())

	wrapped := fmt.Errorf("list questions: %w", err)
	require.True(t, apperrors.Is(wrapped, apperrors.ErrUpstream))
}

func TestKindWithoutCause(t *testing.T) {
	require.Equal(t, apperrors.ErrNotFound, apperrors.Kind(apperrors.ErrNotFound, nil))
}

func TestWrapf(t *testing.T) {
	require.NoError(t, apperrors.Wrapf(nil, "ignored"))

	err := apperrors.Wrapf(apperrors.ErrNotFound, "question %s", "q-1")
	require.EqualError(t, err, "question q-1: not found")
	require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
