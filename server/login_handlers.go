package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/go-quiz-server/auth"
	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"github.com/jrsteele09/go-quiz-server/internal/logger"
	"github.com/jrsteele09/go-quiz-server/users"
)

const maxLoginBody = 1 << 14

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
}

type loginResponse struct {
	Message string           `json:"message"`
	User    users.PublicUser `json:"user"`
	Token   string           `json:"token"`
}

type validationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// LoginPageHandler renders the login page (GET /login). A browser that
// already holds a valid token goes straight to the admin area.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := cookieValue(r, cookieToken); raw != "" {
			if _, err := s.auth.VerifyRequest(r.Context(), raw); err == nil {
				http.Redirect(w, r, RouteAdmin, http.StatusFound)
				return
			}
			s.clearTokenCookie(w)
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.loginTmpl.Execute(w, LoginPageData{AppName: s.config.GetAppName()}); err != nil {
			logger.FromContext(r.Context()).Err(err).Msg("Failed to render login template")
		}
	}
}

// LoginHandler processes a JSON login (POST /login).
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := auth.DecodeLoginRequest(http.MaxBytesReader(w, r.Body, maxLoginBody))
		if err == nil {
			var result *auth.LoginResult
			if result, err = s.auth.Login(r.Context(), req); err == nil {
				s.setSessionCookie(w, result.Session.ID)
				s.setTokenCookie(w, result.Token)
				writeJSON(w, http.StatusOK, loginResponse{
					Message: "Login successful",
					User:    result.User,
					Token:   result.Token,
				})
				return
			}
		}

		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusBadRequest, validationResponse{Message: "Validation failed", Errors: verr.Fields})
		case errors.Is(err, apperrors.ErrInvalidJSON):
			writeMessage(w, http.StatusBadRequest, "Invalid JSON payload")
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			writeMessage(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			logger.FromContext(r.Context()).Err(err).Msg("login failed")
			writeMessage(w, httpStatus(err), "Login failed")
		}
	}
}

// LogoutHandler removes the session and both cookies (POST /logout). The
// token itself stays valid until it expires.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.Logout(r.Context(), cookieValue(r, cookieSessionID)); err != nil {
			logger.FromContext(r.Context()).Err(err).Msg("Failed to delete session")
		}
		s.clearSessionCookie(w)
		s.clearTokenCookie(w)

		if wantsJSON(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		redirectSuccess(w, r, RouteLogin)
	}
}

// RefreshHandler issues a new token cookie from a live session
// (POST /auth/refresh).
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.auth.Refresh(r.Context(), cookieValue(r, cookieSessionID))
		if err != nil {
			status := httpStatus(err)
			if status == http.StatusUnauthorized {
				s.clearSessionCookie(w)
				writeMessage(w, status, "Unauthenticated")
				return
			}
			logger.FromContext(r.Context()).Err(err).Msg("token refresh failed")
			writeMessage(w, status, "Refresh failed")
			return
		}
		s.setTokenCookie(w, result.Token)
		writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
	}
}
