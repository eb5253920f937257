// Package questions holds the quiz question model and the Store contract
// implemented by the webhook, Postgres and in-memory backends.
package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/internal/utils"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

const structureMessage = "Invalid question data structure or types. Expected { text: string, options: [string, string, string, string], correctAnswerIndex: number (0-3) }"

// Question is a stored quiz question.
type Question struct {
	ID                 string   `json:"id"`
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Input is a create or update payload. Pointer fields distinguish missing
// from zero; option elements are pointers so a JSON null is rejected rather
// than stored as "".
type Input struct {
	Text               *string    `json:"text" validate:"required"`
	Options            *[]*string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswerIndex *int       `json:"correctAnswerIndex" validate:"required,min=0,max=3"`
}

// ValidationError describes a rejected payload. Message is safe to return
// to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return apperrors.ErrValidation }

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeInput reads a JSON payload. Syntax errors wrap ErrInvalidJSON; wrong
// types come back as a *ValidationError.
func DecodeInput(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Input{}, &ValidationError{Message: structureMessage}
		}
		return Input{}, fmt.Errorf("[questions DecodeInput] %w: %v", apperrors.ErrInvalidJSON, err)
	}
	return in, nil
}

// ValidateInput checks presence first, then shape.
func ValidateInput(in Input) error {
	switch {
	case in.Text == nil:
		return &ValidationError{Message: "Missing required field: text"}
	case in.Options == nil:
		return &ValidationError{Message: "Missing required field: options"}
	case in.CorrectAnswerIndex == nil:
		return &ValidationError{Message: "Missing required field: correctAnswerIndex"}
	}
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Message: structureMessage}
	}
	return nil
}

// NewInput builds a fully populated Input.
func NewInput(text string, options []string, correctAnswerIndex int) Input {
	opts := make([]*string, len(options))
	for i, o := range options {
		opts[i] = utils.Ptr(o)
	}
	return Input{
		Text:               utils.Ptr(text),
		Options:            &opts,
		CorrectAnswerIndex: utils.Ptr(correctAnswerIndex),
	}
}

// Normalize returns a question with id and trimmed strings. Call after
// ValidateInput.
func (in Input) Normalize(id string) Question {
	src := utils.Value(in.Options)
	opts := make([]string, len(src))
	for i, o := range src {
		opts[i] = strings.TrimSpace(utils.Value(o))
	}
	return Question{
		ID:                 id,
		Text:               strings.TrimSpace(utils.Value(in.Text)),
		Options:            opts,
		CorrectAnswerIndex: utils.Value(in.CorrectAnswerIndex),
	}
}

// NewID returns a fresh question id.
func NewID() string {
	return uuid.NewString()
}
