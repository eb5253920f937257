package fakequestionstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-quiz-server/questions"
)

var _ questions.Store = (*FakeQuestionStore)(nil)

// FakeQuestionStore keeps questions in memory, in insertion order.
type FakeQuestionStore struct {
	questions []questions.Question
	lock      sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
}

func NewFakeQuestionStore(seed ...questions.Question) *FakeQuestionStore {
	return &FakeQuestionStore{questions: append([]questions.Question(nil), seed...)}
}

func (s *FakeQuestionStore) List(ctx context.Context) ([]questions.Question, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]questions.Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = clone(q)
	}
	return out, nil
}

func (s *FakeQuestionStore) Create(ctx context.Context, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return questions.Question{}, err
	}
	q := in.Normalize(questions.NewID())
	s.questions = append(s.questions, q)
	return clone(q), nil
}

func (s *FakeQuestionStore) Update(ctx context.Context, id string, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return questions.Question{}, err
	}
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions[i] = in.Normalize(id)
			return clone(s.questions[i]), nil
		}
	}
	return questions.Question{}, questions.ErrNotFound
}

func (s *FakeQuestionStore) Delete(ctx context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return err
	}
	for i := range s.questions {
		if s.questions[i].ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return questions.ErrNotFound
}

func (s *FakeQuestionStore) check(ctx context.Context) error {
	if s.Err != nil {
		return questions.Upstream(s.Err)
	}
	if err := ctx.Err(); err != nil {
		return questions.Upstream(err)
	}
	return nil
}

func clone(q questions.Question) questions.Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
