package server

import (
	"net/http"

	"github.com/jrsteele09/go-quiz-server/internal/config"
	"github.com/jrsteele09/go-quiz-server/internal/logger"
	"github.com/jrsteele09/go-quiz-server/questions"
	"github.com/jrsteele09/go-quiz-server/users"
)

// AdminPageData contains data for rendering the admin page
type AdminPageData struct {
	AppName   string
	User      *users.PublicUser
	Questions []questions.Question
	Settings  config.QuizSettings
}

// ErrorPageData contains data for rendering an error page
type ErrorPageData struct {
	AppName string
	Status  int
	Message string
}

// AdminPageHandler renders the question editor (GET /admin). Must run behind
// RequirePageAuth.
func (s *Server) AdminPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())

		list, err := s.questions.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Err(err).Msg("failed to fetch questions for admin page")
			if s.config.GetAdminFetchFailureRedirect() {
				redirectSuccess(w, r, RouteLogin)
				return
			}
			s.renderError(w, r, http.StatusBadGateway, "The question store is unavailable. Try again shortly.")
			return
		}

		data := AdminPageData{
			AppName:   s.config.GetAppName(),
			User:      user,
			Questions: list,
			Settings:  s.config.GetQuizSettings(),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		w.Header().Set("Cache-Control", "no-store")
		if err := s.adminTmpl.Execute(w, data); err != nil {
			logger.FromContext(r.Context()).Err(err).Msg("Failed to render admin template")
		}
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	data := ErrorPageData{AppName: s.config.GetAppName(), Status: status, Message: message}
	if err := s.errorTmpl.Execute(w, data); err != nil {
		logger.FromContext(r.Context()).Err(err).Msg("Failed to render error template")
	}
}
