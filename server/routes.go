package server

import (
	"net/http"

	"github.com/jrsteele09/go-quiz-server/internal/telemetry"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RouteAdmin, http.StatusFound)
	}, s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware(s.LoginRateLimitMiddleware)...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))

	// Admin page (cookie token, redirects to login)
	s.RegisterRouteFunc("GET "+RouteAdmin, ChainMiddleware(s.AdminPageHandler(), s.HTMLMiddleWare(s.RequirePageAuth)...))

	// Question API (cookie token, 401 JSON)
	s.RegisterRouteFunc("GET "+RouteAdminQuestions, ChainMiddleware(s.ListQuestionsHandler(), s.APIMiddleware(s.RequireAPIAuth)...))
	s.RegisterRouteFunc("POST "+RouteAdminQuestions, ChainMiddleware(s.CreateQuestionHandler(), s.APIMiddleware(s.RequireAPIAuth)...))
	s.RegisterRouteFunc("PUT "+RouteAdminQuestionID, ChainMiddleware(s.UpdateQuestionHandler(), s.APIMiddleware(s.RequireAPIAuth)...))
	s.RegisterRouteFunc("DELETE "+RouteAdminQuestionID, ChainMiddleware(s.DeleteQuestionHandler(), s.APIMiddleware(s.RequireAPIAuth)...))
	s.RegisterRouteFunc("OPTIONS "+RouteAdminQuestions, ChainMiddleware(noContent, s.APIMiddleware()...))
	s.RegisterRouteFunc("OPTIONS "+RouteAdminQuestionID, ChainMiddleware(noContent, s.APIMiddleware()...))

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteFunc("GET "+RouteReady, s.ReadyHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, telemetry.Handler())
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
