package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
)

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required"`
}

var fieldMessages = map[string]string{
	"email":    "Invalid email address",
	"password": "Password is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeLoginRequest reads a login payload. Malformed JSON wraps
// ErrInvalidJSON; a non-string field is reported as a *ValidationError.
func DecodeLoginRequest(r io.Reader) (LoginRequest, error) {
	var req LoginRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			verr := &ValidationError{}
			verr.add(typeErr.Field, "Expected "+typeErr.Type.String()+", received "+typeErr.Value)
			return LoginRequest{}, verr
		}
		return LoginRequest{}, fmt.Errorf("[auth DecodeLoginRequest] %w: %v", apperrors.ErrInvalidJSON, err)
	}
	return req, nil
}

// Validate checks the email format and that a password was given. Any
// non-empty password goes on to the hash comparison.
func (r LoginRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("[auth Validate] %w", err)
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		verr.add(fe.Field(), msg)
	}
	return verr
}
