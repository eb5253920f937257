package questions_test

import (
	"context"
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/questions"
	fakequestionstore "github.com/jrsteele09/go-quiz-server/questions/repofake"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) (questions.Input, error) {
	t.Helper()
	return questions.DecodeInput(strings.NewReader(body))
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"valid", `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":3}`, ""},
		{"index zero is present", `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":0}`, ""},
		{"missing text", `{"options":["a","b","c","d"],"correctAnswerIndex":1}`, "Missing required field: text"},
		{"missing options", `{"text":"Q","correctAnswerIndex":1}`, "Missing required field: options"},
		{"missing index", `{"text":"Q","options":["a","b","c","d"]}`, "Missing required field: correctAnswerIndex"},
		{"three options", `{"text":"Q","options":["a","b","c"],"correctAnswerIndex":1}`, "Invalid question data structure"},
		{"five options", `{"text":"Q","options":["a","b","c","d","e"],"correctAnswerIndex":1}`, "Invalid question data structure"},
		{"index too high", `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":4}`, "Invalid question data structure"},
		{"negative index", `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":-1}`, "Invalid question data structure"},
		{"null option", `{"text":"Q","options":["a",null,"c","d"],"correctAnswerIndex":1}`, "Invalid question data structure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := decode(t, tt.body)
			require.NoError(t, err)
			err = questions.ValidateInput(in)
			if tt.message == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidation)
			require.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestDecodeInput(t *testing.T) {
	_, err := decode(t, `{"text":`)
	require.ErrorIs(t, err, apperrors.ErrInvalidJSON)

	_, err = decode(t, `{"text":"Q","options":["a",2,"c","d"],"correctAnswerIndex":1}`)
	var verr *questions.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = decode(t, `{"text":42,"options":["a","b","c","d"],"correctAnswerIndex":1}`)
	require.ErrorAs(t, err, &verr)
}

func TestNormalize(t *testing.T) {
	in, err := decode(t, `{"text":"  Q  ","options":[" a","b ","  c  ","d"],"correctAnswerIndex":2}`)
	require.NoError(t, err)
	q := in.Normalize("id-1")
	require.Equal(t, questions.Question{ID: "id-1", Text: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2}, q)
}

func TestNewInputMatchesDecoded(t *testing.T) {
	decoded, err := decode(t, `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":2}`)
	require.NoError(t, err)
	built := questions.NewInput("Q", []string{"a", "b", "c", "d"}, 2)
	require.NoError(t, questions.ValidateInput(built))
	require.Equal(t, decoded.Normalize("x"), built.Normalize("x"))
}

func TestInstrumentAppliesTimeout(t *testing.T) {
	fake := fakequestionstore.NewFakeQuestionStore()
	s := questions.Instrument(blocking{fake}, "memory", 20*time.Millisecond)

	_, err := s.List(context.Background())
	require.ErrorIs(t, err, questions.ErrUpstream)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFakeStore(t *testing.T) {
	ctx := context.Background()
	s := questions.Instrument(fakequestionstore.NewFakeQuestionStore(), "memory", time.Second)

	in, err := decode(t, `{"text":"Q","options":["a","b","c","d"],"correctAnswerIndex":1}`)
	require.NoError(t, err)
	created, err := s.Create(ctx, in)
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, created.ID))
	require.ErrorIs(t, s.Delete(ctx, created.ID), questions.ErrNotFound)
}

// blocking waits for the context before delegating.
type blocking struct{ questions.Store }

func (b blocking) List(ctx context.Context) ([]questions.Question, error) {
	<-ctx.Done()
	return nil, questions.Upstream(ctx.Err())
}
