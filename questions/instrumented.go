package questions

import (
	"context"
	"errors"
	"time"

	"github.com/jrsteele09/go-quiz-server/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type instrumented struct {
	next    Store
	backend string
	timeout time.Duration
}

// Instrument wraps s with a per-call timeout, a span and the
// question_store_requests_total metric. A zero timeout leaves the caller's
// deadline alone.
func Instrument(s Store, backend string, timeout time.Duration) Store {
	return &instrumented{next: s, backend: backend, timeout: timeout}
}

func (i *instrumented) List(ctx context.Context) ([]Question, error) {
	ctx, done := i.begin(ctx, "list")
	out, err := i.next.List(ctx)
	done(err)
	return out, err
}

func (i *instrumented) Create(ctx context.Context, in Input) (Question, error) {
	ctx, done := i.begin(ctx, "create")
	out, err := i.next.Create(ctx, in)
	done(err)
	return out, err
}

func (i *instrumented) Update(ctx context.Context, id string, in Input) (Question, error) {
	ctx, done := i.begin(ctx, "update", attribute.String("question.id", id))
	out, err := i.next.Update(ctx, id, in)
	done(err)
	return out, err
}

func (i *instrumented) Delete(ctx context.Context, id string) error {
	ctx, done := i.begin(ctx, "delete", attribute.String("question.id", id))
	err := i.next.Delete(ctx, id)
	done(err)
	return err
}

func (i *instrumented) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	cancel := context.CancelFunc(func() {})
	if i.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
	}
	ctx, span := telemetry.StartSpan(ctx, "questions."+op)
	span.SetAttributes(append(attrs, attribute.String("question.backend", i.backend))...)

	return ctx, func(err error) {
		result := resultLabel(err)
		span.SetAttributes(attribute.String("result", result))
		if result == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		cancel()
		telemetry.QuestionStoreRequests.WithLabelValues(op, result).Inc()
	}
}

func resultLabel(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &verr):
		return "invalid"
	default:
		return "error"
	}
}
