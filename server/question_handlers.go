package server

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/internal/logger"
	"github.com/jrsteele09/go-quiz-server/questions"
)

const maxQuestionBody = 1 << 16

// ListQuestionsHandler returns every question (GET /admin/questions).
func (s *Server) ListQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.questions.List(r.Context())
		if err != nil {
			s.writeQuestionError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CreateQuestionHandler adds a question (POST /admin/questions).
func (s *Server) CreateQuestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := questions.DecodeInput(http.MaxBytesReader(w, r.Body, maxQuestionBody))
		if err == nil {
			err = questions.ValidateInput(in)
		}
		if err != nil {
			s.writeQuestionError(w, r, err, "")
			return
		}
		q, err := s.questions.Create(r.Context(), in)
		if err != nil {
			s.writeQuestionError(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// UpdateQuestionHandler replaces a question (PUT /admin/questions/{questionId}).
func (s *Server) UpdateQuestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("questionId")
		in, err := questions.DecodeInput(http.MaxBytesReader(w, r.Body, maxQuestionBody))
		if err == nil {
			err = questions.ValidateInput(in)
		}
		if err != nil {
			s.writeQuestionError(w, r, err, id)
			return
		}
		q, err := s.questions.Update(r.Context(), id, in)
		if err != nil {
			s.writeQuestionError(w, r, err, id)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// DeleteQuestionHandler removes a question (DELETE /admin/questions/{questionId}).
func (s *Server) DeleteQuestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("questionId")
		if err := s.questions.Delete(r.Context(), id); err != nil {
			s.writeQuestionError(w, r, err, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeQuestionError answers with the question API error contract. Upstream
// failures are 500 here; only the admin page reports them as 502.
func (s *Server) writeQuestionError(w http.ResponseWriter, r *http.Request, err error, id string) {
	var verr *questions.ValidationError
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, apperrors.ErrInvalidJSON):
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload")
	case errors.Is(err, questions.ErrNotFound):
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Question with id %s not found", id))
	case errors.Is(err, questions.ErrUpstream):
		logger.FromContext(r.Context()).Err(err).Msg("question store failure")
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch or parse questions data from the question store")
	default:
		logger.FromContext(r.Context()).Err(err).Msg("unexpected question store error")
		writeMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
