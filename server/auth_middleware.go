package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-quiz-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUser stores the authenticated *users.PublicUser
const ContextKeyUser ContextKey = "user"

// UserFromContext returns the principal set by an auth guard.
func UserFromContext(ctx context.Context) (*users.PublicUser, bool) {
	u, ok := ctx.Value(ContextKeyUser).(*users.PublicUser)
	return u, ok
}

// RequirePageAuth guards server rendered pages. A missing token redirects to
// the login page; an invalid one is also cleared from the browser.
func (s *Server) RequirePageAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := cookieValue(r, cookieToken)
		if raw == "" {
			redirectSuccess(w, r, RouteLogin)
			return
		}
		user, err := s.auth.VerifyRequest(r.Context(), raw)
		if err != nil {
			s.clearTokenCookie(w)
			redirectSuccess(w, r, RouteLogin)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user)))
	}
}

// RequireAPIAuth guards JSON routes and answers 401 instead of redirecting.
// The token comes from the cookie or, failing that, a Bearer header.
func (s *Server) RequireAPIAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := cookieValue(r, cookieToken)
		if raw == "" {
			raw = bearerToken(r)
		}
		user, err := s.auth.VerifyRequest(r.Context(), raw)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "Unauthenticated")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user)))
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
