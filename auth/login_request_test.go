package auth_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/go-quiz-server/auth"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeLoginRequest(t *testing.T) {
	req, err := auth.DecodeLoginRequest(strings.NewReader(`{"email":"test@example.com","password":"password123"}`))
	require.NoError(t, err)
	require.Equal(t, auth.LoginRequest{Email: "test@example.com", Password: "password123"}, req)
	require.NoError(t, req.Validate())

	_, err = auth.DecodeLoginRequest(strings.NewReader(`{"email":`))
	require.ErrorIs(t, err, apperrors.ErrInvalidJSON)

	_, err = auth.DecodeLoginRequest(strings.NewReader(`{"email":42,"password":"password123"}`))
	var verr *auth.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "email")
}

func TestValidateMissingFields(t *testing.T) {
	req, err := auth.DecodeLoginRequest(strings.NewReader(`{}`))
	require.NoError(t, err)

	err = req.Validate()
	var verr *auth.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"Invalid email address"}, verr.Fields["email"])
	require.Equal(t, []string{"Password is required"}, verr.Fields["password"])
}

func TestValidateAcceptsShortPassword(t *testing.T) {
	req := auth.LoginRequest{Email: "test@example.com", Password: "wrong"}
	require.NoError(t, req.Validate())
}
