// Package webhook stores questions behind a remote HTTP webhook that
// returns the whole question list on GET and replaces it on POST.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-quiz-server/questions"
	"github.com/rs/zerolog"
)

var _ questions.Store = (*Store)(nil)

// maxBody caps how much of an upstream response is read.
const maxBody = 4 << 20

type Store struct {
	url    string
	client *http.Client

	// writes are read-modify-write of the full list
	writeLock sync.Mutex
}

type Option func(*Store)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) {
		s.client = c
	}
}

func New(url string, opts ...Option) *Store {
	s := &Store{url: url, client: http.DefaultClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) List(ctx context.Context) ([]questions.Question, error) {
	return s.read(ctx)
}

func (s *Store) Create(ctx context.Context, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return questions.Question{}, err
	}
	q := in.Normalize(questions.NewID())
	if err := s.write(ctx, append(list, q)); err != nil {
		return questions.Question{}, err
	}
	return q, nil
}

func (s *Store) Update(ctx context.Context, id string, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return questions.Question{}, err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return questions.Question{}, questions.ErrNotFound
	}
	list[idx] = in.Normalize(id)
	if err := s.write(ctx, list); err != nil {
		return questions.Question{}, err
	}
	return list[idx], nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return questions.ErrNotFound
	}
	return s.write(ctx, append(list[:idx], list[idx+1:]...))
}

func (s *Store) read(ctx context.Context) ([]questions.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, questions.Upstream(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, questions.Upstream(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zerolog.Ctx(ctx).Error().Int("status", resp.StatusCode).Msg("question webhook read failed")
		return nil, questions.Upstream(fmt.Errorf("GET returned %s", resp.Status))
	}

	var list []questions.Question
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&list); err != nil {
		return nil, questions.Upstream(fmt.Errorf("decode: %w", err))
	}
	if list == nil {
		list = []questions.Question{}
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, list []questions.Question) error {
	body, err := json.Marshal(list)
	if err != nil {
		return questions.Upstream(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return questions.Upstream(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return questions.Upstream(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zerolog.Ctx(ctx).Error().Int("status", resp.StatusCode).Msg("question webhook write failed")
		return questions.Upstream(fmt.Errorf("POST returned %s", resp.Status))
	}
	return nil
}

func indexOf(list []questions.Question, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
