package webhook_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-quiz-server/questions"
	"github.com/jrsteele09/go-quiz-server/questions/webhook"
	"github.com/stretchr/testify/require"
)

// upstream mimics the remote webhook: GET returns the list, POST replaces it.
type upstream struct {
	mu     sync.Mutex
	list   []questions.Question
	status int
	posts  int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.status != 0 {
		w.WriteHeader(u.status)
		return
	}
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(u.list)
	case http.MethodPost:
		var list []questions.Question
		if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		u.list = list
		u.posts++
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T, u *upstream) *webhook.Store {
	t.Helper()
	srv := httptest.NewServer(u)
	t.Cleanup(srv.Close)
	return webhook.New(srv.URL, webhook.WithHTTPClient(srv.Client()))
}

func input(text string, opts []string, idx int) questions.Input {
	return questions.NewInput(text, opts, idx)
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	u := &upstream{list: []questions.Question{{ID: "q1", Text: "2+2?", Options: []string{"1", "2", "3", "4"}, CorrectAnswerIndex: 3}}}
	s := newStore(t, u)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	created, err := s.Create(ctx, input("  Capital of France? ", []string{" Paris", "Rome ", "Oslo", "Bern"}, 0))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Capital of France?", created.Text)
	require.Equal(t, []string{"Paris", "Rome", "Oslo", "Bern"}, created.Options)
	require.Len(t, u.list, 2)

	updated, err := s.Update(ctx, "q1", input("2+3?", []string{"5", "6", "7", "8"}, 0))
	require.NoError(t, err)
	require.Equal(t, "q1", updated.ID)
	require.Equal(t, "2+3?", u.list[0].Text)

	require.NoError(t, s.Delete(ctx, "q1"))
	require.Len(t, u.list, 1)
	require.Equal(t, created.ID, u.list[0].ID)
	require.Equal(t, 3, u.posts)
}

func TestUnknownID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, &upstream{})

	err := s.Delete(ctx, "missing")
	require.ErrorIs(t, err, questions.ErrNotFound)

	_, err = s.Update(ctx, "missing", input("x", []string{"a", "b", "c", "d"}, 1))
	require.ErrorIs(t, err, questions.ErrNotFound)
}

func TestUpstreamFailure(t *testing.T) {
	s := newStore(t, &upstream{status: http.StatusInternalServerError})

	_, err := s.List(context.Background())
	require.ErrorIs(t, err, questions.ErrUpstream)
}

func TestBadJSONFromUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := webhook.New(srv.URL).List(context.Background())
	require.ErrorIs(t, err, questions.ErrUpstream)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := webhook.New(srv.URL).List(ctx)
	require.ErrorIs(t, err, questions.ErrUpstream)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestValidationBeforeUpstream(t *testing.T) {
	u := &upstream{}
	s := newStore(t, u)

	_, err := s.Create(context.Background(), input("x", []string{"a", "b", "c"}, 0))
	var verr *questions.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, u.posts)
}
